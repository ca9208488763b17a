package dataprovider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/network"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// FileProvider reads stations and lines from YAML and timetables from one CSV per line
type FileProvider struct {
	FS fs.FS

	StationsPath string
	LinesPath    string

	// SchedulePattern is formatted with the line number, e.g. "schedules/line-%d.csv"
	SchedulePattern string
}

type scheduleRow struct {
	StationID     string     `csv:"station_id"`
	Line          int        `csv:"line"`
	Branch        bool       `csv:"branch"`
	DestinationEn string     `csv:"destination_en"`
	DestinationFa string     `csv:"destination_fa"`
	Type          string     `csv:"type"`
	Times         ClockTimes `csv:"times"`
}

// ClockTimes is a space separated list of HH:MM departures
type ClockTimes []float64

func (c *ClockTimes) UnmarshalCSV(value string) error {
	times := ClockTimes{}

	for _, field := range strings.Fields(value) {
		fraction, err := metro.ParseClock(field)
		if err != nil {
			return err
		}
		times = append(times, fraction)
	}

	*c = times
	return nil
}

func (c ClockTimes) MarshalCSV() (string, error) {
	clocks := make([]string, 0, len(c))
	for _, fraction := range c {
		clocks = append(clocks, metro.FormatClock(fraction))
	}

	return strings.Join(clocks, " "), nil
}

func (f *FileProvider) LoadNetwork(ctx context.Context) (*network.Network, error) {
	stations, err := f.Stations()
	if err != nil {
		return nil, err
	}

	lines, err := f.Lines()
	if err != nil {
		return nil, err
	}

	stationMap := make(map[string]*metro.Station, len(stations))
	for _, station := range stations {
		stationMap[station.ID] = station
	}

	log.Info().Int("stations", len(stationMap)).Int("lines", len(lines)).Msg("Loaded network from files")

	return network.New(stationMap, lines)
}

func (f *FileProvider) Stations() ([]*metro.Station, error) {
	var stations []*metro.Station
	if err := f.decodeYAML(f.StationsPath, &stations); err != nil {
		return nil, err
	}

	return stations, nil
}

func (f *FileProvider) Lines() ([]*metro.Line, error) {
	var lines []*metro.Line
	if err := f.decodeYAML(f.LinesPath, &lines); err != nil {
		return nil, err
	}

	return lines, nil
}

func (f *FileProvider) decodeYAML(path string, out any) error {
	contents, err := fs.ReadFile(f.FS, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(contents, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

func (f *FileProvider) LineTimetable(ctx context.Context, line int) (*metro.LineTimetable, error) {
	entries, err := f.ScheduleEntries(line)
	if err != nil {
		return nil, err
	}

	return metro.GroupScheduleEntries(line, entries), nil
}

// ScheduleEntries flattens a line's CSV timetable into one entry per departure
func (f *FileProvider) ScheduleEntries(line int) ([]metro.ScheduleEntry, error) {
	path := fmt.Sprintf(f.SchedulePattern, line)

	contents, err := fs.ReadFile(f.FS, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("line %d: %w", line, ErrNoTimetable)
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var rows []*scheduleRow
	if err := gocsv.Unmarshal(bytes.NewReader(contents), &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var entries []metro.ScheduleEntry
	for _, row := range rows {
		if row.Line != line {
			log.Warn().Str("file", path).Str("station", row.StationID).Int("line", row.Line).Msg("Skipping schedule row for another line")
			continue
		}

		for _, departure := range row.Times {
			entries = append(entries, metro.ScheduleEntry{
				StationID: row.StationID,
				Line:      row.Line,
				Branch:    row.Branch,
				Destination: metro.BilingualName{
					En: row.DestinationEn,
					Fa: row.DestinationFa,
				},
				Type: metro.ScheduleType(row.Type),
				Time: departure,
			})
		}
	}

	log.Debug().Int("line", line).Int("rows", len(rows)).Int("departures", len(entries)).Msg("Loaded line timetable")

	return entries, nil
}
