package metro

import "encoding/json"

// PathItem is either a Title or a StationItem. The set is closed: only types in
// this package implement it, so a type switch over the two is exhaustive.
type PathItem interface {
	pathItem()
}

// Title opens a directional segment of an itinerary on one line
type Title struct {
	Line      int
	Direction BilingualName
	Branch    bool
	Heading   Heading
}

// StationItem is one stop of an itinerary
type StationItem struct {
	Station     *Station
	Line        int
	Passthrough bool
}

func (Title) pathItem()       {}
func (StationItem) pathItem() {}

func NewStationItem(station *Station, line int) StationItem {
	return StationItem{
		Station:     station,
		Line:        line,
		Passthrough: station.Disabled,
	}
}

func (t Title) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string        `json:"type"`
		Line      int           `json:"line"`
		Direction BilingualName `json:"direction"`
		Branch    bool          `json:"branch"`
		Heading   Heading       `json:"heading"`
	}{
		Type:      "title",
		Line:      t.Line,
		Direction: t.Direction,
		Branch:    t.Branch,
		Heading:   t.Heading,
	})
}

func (s StationItem) MarshalJSON() ([]byte, error) {
	item := struct {
		Type        string        `json:"type"`
		StationID   string        `json:"station_id"`
		Name        BilingualName `json:"name"`
		Line        int           `json:"line"`
		Passthrough bool          `json:"passthrough"`
	}{
		Type:        "station",
		Line:        s.Line,
		Passthrough: s.Passthrough,
	}
	if s.Station != nil {
		item.StationID = s.Station.ID
		item.Name = s.Station.Name
	}

	return json.Marshal(item)
}

// StationIDs returns the station ids of an itinerary in order, hinge stations included twice
func StationIDs(items []PathItem) []string {
	var ids []string
	for _, item := range items {
		if stationItem, ok := item.(StationItem); ok && stationItem.Station != nil {
			ids = append(ids, stationItem.Station.ID)
		}
	}

	return ids
}

func Titles(items []PathItem) []Title {
	var titles []Title
	for _, item := range items {
		if title, ok := item.(Title); ok {
			titles = append(titles, title)
		}
	}

	return titles
}
