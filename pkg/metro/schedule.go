package metro

import (
	"time"

	"golang.org/x/exp/slices"
)

type ScheduleType string

const (
	ScheduleTypeSatToWed ScheduleType = "sat-to-wed"
	ScheduleTypeThursday ScheduleType = "thursday"
	ScheduleTypeFriday   ScheduleType = "friday"
	ScheduleTypeHoliday  ScheduleType = "holiday"
	ScheduleTypeAllDay   ScheduleType = "all-day"
)

// ScheduleTypesFor lists the schedule types that apply on a weekday, most specific first
func ScheduleTypesFor(weekday time.Weekday) []ScheduleType {
	switch weekday {
	case time.Thursday:
		return []ScheduleType{ScheduleTypeThursday, ScheduleTypeAllDay}
	case time.Friday:
		return []ScheduleType{ScheduleTypeFriday, ScheduleTypeHoliday}
	default:
		return []ScheduleType{ScheduleTypeSatToWed, ScheduleTypeAllDay}
	}
}

// GroupedScheduleInfo is every departure from one station toward one destination,
// keyed by schedule type. Times are fractional days, sorted ascending.
type GroupedScheduleInfo struct {
	Destination BilingualName              `json:"destination" bson:"destination"`
	Times       map[ScheduleType][]float64 `json:"times" bson:"times"`
}

// ScheduleEntry is a single departure row as providers store it
type ScheduleEntry struct {
	StationID   string        `json:"station_id" bson:"stationid"`
	Line        int           `json:"line" bson:"line"`
	Branch      bool          `json:"branch" bson:"branch"`
	Destination BilingualName `json:"destination" bson:"destination"`
	Type        ScheduleType  `json:"type" bson:"type"`
	Time        float64       `json:"time" bson:"time"`
}

// LineTimetable holds every schedule group of a line, indexed by station and branch flag
type LineTimetable struct {
	Line     int
	Stations map[TimetableKey][]GroupedScheduleInfo
}

type TimetableKey struct {
	StationID string
	Branch    bool
}

// GroupScheduleEntries folds flat rows into per-station destination groups with sorted times
func GroupScheduleEntries(line int, entries []ScheduleEntry) *LineTimetable {
	timetable := &LineTimetable{
		Line:     line,
		Stations: map[TimetableKey][]GroupedScheduleInfo{},
	}

	for _, entry := range entries {
		if entry.Line != line {
			continue
		}

		key := TimetableKey{StationID: entry.StationID, Branch: entry.Branch}
		groups := timetable.Stations[key]

		groupIndex := -1
		for i, group := range groups {
			if group.Destination == entry.Destination {
				groupIndex = i
				break
			}
		}
		if groupIndex == -1 {
			groups = append(groups, GroupedScheduleInfo{
				Destination: entry.Destination,
				Times:       map[ScheduleType][]float64{},
			})
			groupIndex = len(groups) - 1
		}

		groups[groupIndex].Times[entry.Type] = append(groups[groupIndex].Times[entry.Type], entry.Time)
		timetable.Stations[key] = groups
	}

	for _, groups := range timetable.Stations {
		for _, group := range groups {
			for _, times := range group.Times {
				slices.Sort(times)
			}
		}
	}

	return timetable
}

func (t *LineTimetable) Lookup(stationID string, branch bool) []GroupedScheduleInfo {
	if t == nil {
		return nil
	}

	return t.Stations[TimetableKey{StationID: stationID, Branch: branch}]
}
