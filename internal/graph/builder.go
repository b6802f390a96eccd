package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/buildsight/buildsight/internal/extract"
)

// Builder accumulates the dependency edges of many parse results into one
// directed identifier graph. Edges are free-text on both ends, so vertices
// appear whether or not the tree ever defines them.
type Builder struct {
	g graph.Graph[string, string]
}

// NewBuilder creates an empty directed dependency graph.
func NewBuilder() *Builder {
	return &Builder{
		g: graph.New(graph.StringHash, graph.Directed()),
	}
}

// AddResult merges one file's dependency edges into the graph. Edges with
// no From identifier (shell sourcing, imports) originate from the file
// itself.
func (b *Builder) AddResult(path string, res *extract.ParseResult) error {
	for _, d := range res.Dependencies {
		from := d.From
		if from == "" {
			from = path
		}
		to := d.To
		if to == "" || from == to {
			continue
		}

		if err := b.addEdge(from, to); err != nil {
			return fmt.Errorf("failed to add edge %s -> %s: %w", from, to, err)
		}
	}
	return nil
}

func (b *Builder) addEdge(from, to string) error {
	if err := b.g.AddVertex(from); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return err
	}
	if err := b.g.AddVertex(to); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return err
	}
	if err := b.g.AddEdge(from, to); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return err
	}
	return nil
}

// Stats returns the number of vertices and edges in the graph.
func (b *Builder) Stats() (vertices, edges int, err error) {
	vertices, err = b.g.Order()
	if err != nil {
		return 0, 0, err
	}
	edges, err = b.g.Size()
	if err != nil {
		return 0, 0, err
	}
	return vertices, edges, nil
}

// DegreeEntry pairs an identifier with its dependent count.
type DegreeEntry struct {
	Name   string
	Degree int
}

// MostDepended returns up to limit identifiers ranked by how many edges
// point at them, ties broken by name for stable output.
func (b *Builder) MostDepended(limit int) ([]DegreeEntry, error) {
	predecessors, err := b.g.PredecessorMap()
	if err != nil {
		return nil, err
	}

	entries := make([]DegreeEntry, 0, len(predecessors))
	for name, preds := range predecessors {
		if len(preds) == 0 {
			continue
		}
		entries = append(entries, DegreeEntry{Name: name, Degree: len(preds)})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Degree != entries[j].Degree {
			return entries[i].Degree > entries[j].Degree
		}
		return entries[i].Name < entries[j].Name
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Dependents returns the identifiers with an edge pointing at name, sorted
// for stable output.
func (b *Builder) Dependents(name string) ([]string, error) {
	predecessors, err := b.g.PredecessorMap()
	if err != nil {
		return nil, err
	}

	preds, ok := predecessors[name]
	if !ok {
		return nil, nil
	}

	names := make([]string, 0, len(preds))
	for p := range preds {
		names = append(names, p)
	}
	sort.Strings(names)
	return names, nil
}
