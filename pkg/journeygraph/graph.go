package journeygraph

import (
	"cmp"
	"context"
	"fmt"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/network"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// StationNode is one Station node in the graph
type StationNode struct {
	ID       string
	NameEn   string
	NameFa   string
	Disabled bool
	Lines    []int
}

// Connection is an undirected CONNECTS edge. From sorts before To.
type Connection struct {
	From  string
	To    string
	Lines []int
}

type Graph struct {
	Stations    []StationNode
	Connections []Connection
}

// BuildGraph flattens the network into nodes and one edge per adjacent pair
func BuildGraph(net *network.Network) *Graph {
	graph := &Graph{}

	for _, station := range net.AllStations() {
		lines := station.LineNumbers()
		slices.Sort(lines)

		graph.Stations = append(graph.Stations, StationNode{
			ID:       station.ID,
			NameEn:   station.Name.En,
			NameFa:   station.Name.Fa,
			Disabled: station.Disabled,
			Lines:    lines,
		})

		for _, adjacent := range net.Adjacent(station.ID) {
			if station.ID >= adjacent {
				continue
			}

			graph.Connections = append(graph.Connections, Connection{
				From:  station.ID,
				To:    adjacent,
				Lines: net.SharedLines(station.ID, adjacent),
			})
		}
	}

	slices.SortFunc(graph.Connections, func(a, b Connection) int {
		if a.From != b.From {
			return cmp.Compare(a.From, b.From)
		}
		return cmp.Compare(a.To, b.To)
	})

	return graph
}

// Export replaces the Station graph in Neo4j with the given one
func Export(ctx context.Context, driver neo4j.DriverWithContext, databaseName string, graph *Graph) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: databaseName})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, "MATCH (s:Station) DETACH DELETE s", map[string]any{}); err != nil {
			return nil, fmt.Errorf("clear stations: %w", err)
		}

		for _, station := range graph.Stations {
			_, err := tx.Run(ctx,
				"CREATE (s:Station {id: $id, name_en: $name_en, name_fa: $name_fa, disabled: $disabled, lines: $lines})",
				map[string]any{
					"id":       station.ID,
					"name_en":  station.NameEn,
					"name_fa":  station.NameFa,
					"disabled": station.Disabled,
					"lines":    toAny(station.Lines),
				})
			if err != nil {
				return nil, fmt.Errorf("create station %s: %w", station.ID, err)
			}
		}

		for _, connection := range graph.Connections {
			_, err := tx.Run(ctx, `
				MATCH (a:Station {id: $from})
				MATCH (b:Station {id: $to})
				CREATE (a)-[:CONNECTS {lines: $lines}]->(b)
				`, map[string]any{
				"from":  connection.From,
				"to":    connection.To,
				"lines": toAny(connection.Lines),
			})
			if err != nil {
				return nil, fmt.Errorf("connect %s to %s: %w", connection.From, connection.To, err)
			}
		}

		return nil, nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("stations", len(graph.Stations)).Int("connections", len(graph.Connections)).Msg("Exported journey graph")

	return nil
}

func toAny(lines []int) []any {
	values := make([]any, 0, len(lines))
	for _, line := range lines {
		values = append(values, int64(line))
	}

	return values
}
