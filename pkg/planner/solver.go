package planner

import (
	"container/heap"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
)

const (
	DefaultStationCost    = 3
	DefaultLineChangeCost = 6
)

// Graph is the read surface the solver needs from the network model
type Graph interface {
	Station(id string) (*metro.Station, bool)
	Adjacent(id string) []string
	SharedLines(a string, b string) []int
}

type Options struct {
	StationCost    int
	LineChangeCost int
}

func DefaultOptions() Options {
	return Options{
		StationCost:    DefaultStationCost,
		LineChangeCost: DefaultLineChangeCost,
	}
}

type Result struct {
	Path      []string
	Transfers int
	Cost      int
}

// Solver finds the cheapest route between two stations. It holds no mutable
// state, so one Solver can serve concurrent callers.
type Solver struct {
	graph   Graph
	options Options
}

func NewSolver(graph Graph, options Options) *Solver {
	if options.StationCost < 0 {
		options.StationCost = DefaultStationCost
	}
	if options.LineChangeCost < 0 {
		options.LineChangeCost = DefaultLineChangeCost
	}

	return &Solver{
		graph:   graph,
		options: options,
	}
}

// Solve runs a line-aware Dijkstra search from one station to another. Search
// states are (station, arrival line) since the cost of the next hop depends on
// whether it stays on the same line. Unknown stations and unreachable
// destinations give an empty result and false.
func (s *Solver) Solve(from string, to string) (Result, bool) {
	if _, exists := s.graph.Station(from); !exists {
		return Result{}, false
	}
	if _, exists := s.graph.Station(to); !exists {
		return Result{}, false
	}

	sequence := 0
	queue := &stateQueue{}
	heap.Push(queue, &searchState{
		station: from,
		line:    noLine,
		path:    []string{from},
	})

	settled := map[stateKey]int{}

	for queue.Len() > 0 {
		current := heap.Pop(queue).(*searchState)

		if current.station == to {
			return Result{
				Path:      current.path,
				Transfers: current.transfers,
				Cost:      current.cost,
			}, true
		}

		key := stateKey{station: current.station, line: current.line}
		if best, seen := settled[key]; seen && best <= current.cost {
			continue
		}
		settled[key] = current.cost

		currentStation, _ := s.graph.Station(current.station)

		for _, neighbour := range s.graph.Adjacent(current.station) {
			for _, line := range s.graph.SharedLines(current.station, neighbour) {
				changing := current.line != noLine && line != current.line
				if changing && currentStation.Disabled {
					continue
				}

				cost := current.cost + s.options.StationCost
				transfers := current.transfers
				if changing {
					cost += s.options.LineChangeCost
					transfers++
				}

				if best, seen := settled[stateKey{station: neighbour, line: line}]; seen && best <= cost {
					continue
				}

				path := make([]string, len(current.path), len(current.path)+1)
				copy(path, current.path)

				sequence++
				heap.Push(queue, &searchState{
					station:   neighbour,
					line:      line,
					cost:      cost,
					transfers: transfers,
					path:      append(path, neighbour),
					sequence:  sequence,
				})
			}
		}
	}

	return Result{}, false
}
