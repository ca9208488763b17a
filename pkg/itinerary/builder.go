package itinerary

import (
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Network is the read surface the builder needs from the network model
type Network interface {
	Station(id string) (*metro.Station, bool)
	SharedLines(a string, b string) []int
	Position(id string, line int) (int, bool)
	Branch(line int) *metro.BranchConfig
	IsBranchStation(line int, id string) bool
	Endpoints(line int, branch bool) (*metro.Endpoints, bool)
}

// walkState is the accumulator folded over the station sequence
type walkState struct {
	line     int
	onBranch bool
	items    []metro.PathItem
}

// Build turns an ordered list of station ids into titled, line-segmented path items.
// Every segment opens with a Title; a station where the route changes line or
// moves between a line's branch and main path is emitted once per segment.
func Build(net Network, path []string) []metro.PathItem {
	state := walkState{line: metro.UnassignedLine}

	for i, stationID := range path {
		station, exists := net.Station(stationID)
		if !exists {
			log.Warn().Str("station", stationID).Msg("Skipping unknown station in path")
			continue
		}

		nextID := ""
		if i+1 < len(path) {
			nextID = path[i+1]
		}

		state = step(net, state, station, nextID)
	}

	return state.items
}

func step(net Network, state walkState, station *metro.Station, nextID string) walkState {
	var shared []int
	if nextID != "" {
		shared = net.SharedLines(station.ID, nextID)
		if len(shared) == 0 {
			log.Warn().Str("station", station.ID).Str("next", nextID).Msg("No shared line with next station")
			return state
		}
	}

	if state.line == metro.UnassignedLine && len(shared) > 0 {
		state = boardLine(net, state, shared[0], station, nextID)
	}

	state.items = append(state.items, metro.NewStationItem(station, state.line))

	if nextID == "" {
		return state
	}

	if slices.Contains(shared, state.line) {
		branch := net.Branch(state.line)
		if branch != nil && branch.BranchOff == station.ID {
			nextOnBranch := net.IsBranchStation(state.line, nextID)
			if state.onBranch != nextOnBranch {
				state.onBranch = nextOnBranch
				state = appendTitle(net, state, station, nextID, false)
				state.items = append(state.items, metro.NewStationItem(station, state.line))
			}
		}

		return state
	}

	state = boardLine(net, state, shared[0], station, nextID)
	state.items = append(state.items, metro.NewStationItem(station, state.line))

	return state
}

// boardLine starts a new segment on a line at the given station
func boardLine(net Network, state walkState, line int, station *metro.Station, nextID string) walkState {
	state.line = line
	state.onBranch = net.IsBranchStation(line, station.ID) || enteringBranch(net, line, station.ID, nextID)

	return appendTitle(net, state, station, nextID, true)
}

func enteringBranch(net Network, line int, stationID string, nextID string) bool {
	branch := net.Branch(line)

	return branch != nil && branch.BranchOff == stationID && net.IsBranchStation(line, nextID)
}

// appendTitle emits the title for the segment starting at station. Titles whose
// endpoint names cannot be resolved are skipped without stopping the walk.
func appendTitle(net Network, state walkState, station *metro.Station, nextID string, boarding bool) walkState {
	from, fromOK := net.Position(station.ID, state.line)
	to, toOK := net.Position(nextID, state.line)
	if !fromOK || !toOK {
		log.Warn().Str("station", station.ID).Int("line", state.line).Msg("Missing line position, skipping title")
		return state
	}
	heading := metro.HeadingBetween(from, to)

	var direction metro.BilingualName
	if boarding && enteringBranch(net, state.line, station.ID, nextID) {
		direction = station.Name
	} else {
		endpoints, exists := net.Endpoints(state.line, state.onBranch)
		if !exists {
			log.Warn().Int("line", state.line).Bool("branch", state.onBranch).Msg("Missing line endpoints, skipping title")
			return state
		}
		direction = endpoints.Toward(heading)
	}

	state.items = append(state.items, metro.Title{
		Line:      state.line,
		Direction: direction,
		Branch:    state.onBranch,
		Heading:   heading,
	})

	return state
}
