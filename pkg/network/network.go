package network

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var ErrAsymmetricRelation = errors.New("station relations are not symmetric")
var ErrUnknownStation = errors.New("unknown station")

// Network is the immutable station graph. It is built once by New and only read
// afterwards, so it is safe for concurrent use.
type Network struct {
	stations map[string]*metro.Station
	lines    map[int]*metro.Line

	positions map[string]map[int]int
	branches  map[int]*metro.BranchConfig
	exclusive map[int]map[string]bool
}

// New validates and indexes stations and lines. Relations must be symmetric and
// only reference known stations. Malformed branch configurations are dropped so the
// line behaves as if it has no branch.
func New(stations map[string]*metro.Station, lines []*metro.Line) (*Network, error) {
	n := &Network{
		stations:  make(map[string]*metro.Station, len(stations)),
		lines:     map[int]*metro.Line{},
		positions: make(map[string]map[int]int, len(stations)),
		branches:  map[int]*metro.BranchConfig{},
		exclusive: map[int]map[string]bool{},
	}

	for id, station := range stations {
		if station == nil {
			continue
		}
		if station.ID == "" {
			station.ID = id
		}
		n.stations[station.ID] = station

		positions := map[int]int{}
		for _, membership := range station.Lines {
			positions[membership.Line] = membership.Position
		}
		n.positions[station.ID] = positions
	}

	for _, station := range n.stations {
		for _, relation := range station.Relations {
			neighbour, exists := n.stations[relation]
			if !exists {
				return nil, fmt.Errorf("station %s relation %s: %w", station.ID, relation, ErrUnknownStation)
			}
			if !slices.Contains(neighbour.Relations, station.ID) {
				return nil, fmt.Errorf("%s -> %s: %w", station.ID, relation, ErrAsymmetricRelation)
			}
		}
	}

	for _, line := range lines {
		if line == nil {
			continue
		}
		n.lines[line.Number] = line

		if line.Config == nil {
			continue
		}
		if reason := n.validateBranch(line); reason != "" {
			log.Warn().Int("line", line.Number).Str("reason", reason).Msg("Ignoring malformed branch configuration")
			continue
		}

		n.branches[line.Number] = line.Config
		exclusive := map[string]bool{}
		for _, id := range line.Config.Stations {
			exclusive[id] = true
		}
		n.exclusive[line.Number] = exclusive
	}

	return n, nil
}

func (n *Network) validateBranch(line *metro.Line) string {
	config := line.Config

	if config.BranchOff == "" || len(config.Stations) == 0 {
		return "empty branch configuration"
	}
	if _, exists := n.stations[config.BranchOff]; !exists {
		return "unknown branch-off station"
	}
	for _, id := range config.Stations {
		if id == config.BranchOff {
			return "branch-off listed as branch station"
		}
		if _, exists := n.stations[id]; !exists {
			return "unknown branch station " + id
		}
	}

	return ""
}

func (n *Network) Station(id string) (*metro.Station, bool) {
	station, exists := n.stations[id]
	return station, exists
}

func (n *Network) Adjacent(id string) []string {
	station, exists := n.stations[id]
	if !exists {
		return nil
	}

	return station.Relations
}

// Lines returns line number -> position for every line the station belongs to
func (n *Network) Lines(id string) map[int]int {
	return n.positions[id]
}

func (n *Network) Position(id string, line int) (int, bool) {
	position, exists := n.positions[id][line]
	return position, exists
}

// SharedLines is the ascending list of lines both stations belong to
func (n *Network) SharedLines(a string, b string) []int {
	aLines := n.positions[a]
	bLines := n.positions[b]

	var shared []int
	for line := range aLines {
		if _, exists := bLines[line]; exists {
			shared = append(shared, line)
		}
	}
	slices.Sort(shared)

	return shared
}

func (n *Network) Line(number int) (*metro.Line, bool) {
	line, exists := n.lines[number]
	return line, exists
}

// AllLines returns every line ordered by number
func (n *Network) AllLines() []*metro.Line {
	lines := make([]*metro.Line, 0, len(n.lines))
	for _, line := range n.lines {
		lines = append(lines, line)
	}
	slices.SortFunc(lines, func(a, b *metro.Line) int {
		return cmp.Compare(a.Number, b.Number)
	})

	return lines
}

// AllStations returns every station ordered by id
func (n *Network) AllStations() []*metro.Station {
	stations := make([]*metro.Station, 0, len(n.stations))
	for _, station := range n.stations {
		stations = append(stations, station)
	}
	slices.SortFunc(stations, func(a, b *metro.Station) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return stations
}

// Branch returns the validated branch configuration of a line, or nil
func (n *Network) Branch(line int) *metro.BranchConfig {
	return n.branches[line]
}

func (n *Network) IsBranchStation(line int, id string) bool {
	return n.exclusive[line][id]
}

// Endpoints resolves the termini of a line's main or branch path
func (n *Network) Endpoints(line int, branch bool) (*metro.Endpoints, bool) {
	l, exists := n.lines[line]
	if !exists {
		return nil, false
	}

	if branch {
		if l.Branch == nil || n.branches[line] == nil {
			return nil, false
		}
		return l.Branch, true
	}

	if l.Main == nil {
		return nil, false
	}
	return l.Main, true
}
