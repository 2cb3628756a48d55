package core

import (
	"database/sql"
	"sort"
	"sync"
)

// Edge records that Source requires Target.
type Edge struct {
	Target string
	Source string
}

// Graph is the incoming-reference index: for every referenced path, the set of paths
// whose content requires it. Reads are served from memory. When the graph is backed by
// a database every mutation is committed there first and applied in memory only after
// the commit succeeds.
type Graph struct {
	mu   sync.RWMutex
	refs map[string]map[string]struct{} // target → sources
	db   *sql.DB
}

// NewGraph returns an empty graph that is not persisted.
func NewGraph() *Graph {
	return &Graph{refs: make(map[string]map[string]struct{})}
}

// OpenGraph loads the graph persisted in db, creating the schema if needed.
func OpenGraph(db *sql.DB) (*Graph, error) {
	if err := initSchema(db); err != nil {
		return nil, err
	}
	edges, err := loadEdges(db)
	if err != nil {
		return nil, err
	}
	g := NewGraph()
	g.db = db
	for _, e := range edges {
		g.add(e.Target, e.Source)
	}
	return g, nil
}

// ReferencersOf returns the sorted paths that reference p. The result may be empty.
func (g *Graph) ReferencersOf(p string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedKeys(g.refs[p])
}

// Rekey moves the entry for oldPath to newPath. The set of referencers is kept as is.
func (g *Graph) Rekey(oldPath, newPath string) error {
	if oldPath == newPath {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.refs[oldPath]; !ok {
		return nil
	}
	err := g.exec(func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE OR REPLACE refs SET target = ? WHERE target = ?", newPath, oldPath)
		return err
	})
	if err != nil {
		return err
	}
	for src := range g.refs[oldPath] {
		g.add(newPath, src)
	}
	delete(g.refs, oldPath)
	return nil
}

// RekeySource relabels the outgoing edges of oldPath as edges of newPath.
func (g *Graph) RekeySource(oldPath, newPath string) error {
	if oldPath == newPath {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	err := g.exec(func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE OR REPLACE refs SET source = ? WHERE source = ?", newPath, oldPath)
		return err
	})
	if err != nil {
		return err
	}
	for _, sources := range g.refs {
		if _, ok := sources[oldPath]; ok {
			delete(sources, oldPath)
			sources[newPath] = struct{}{}
		}
	}
	return nil
}

// Remove deletes the entry for p together with the edges p owns as a source.
// Other artifacts' outgoing edges are left alone.
func (g *Graph) Remove(p string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	err := g.exec(func(tx *sql.Tx) error {
		_, err := tx.Exec("DELETE FROM refs WHERE target = ? OR source = ?", p, p)
		return err
	})
	if err != nil {
		return err
	}
	delete(g.refs, p)
	g.dropSource(p)
	return nil
}

// RemoveSource deletes the edges p owns as a source and keeps the entry for p.
func (g *Graph) RemoveSource(p string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	err := g.exec(func(tx *sql.Tx) error {
		_, err := tx.Exec("DELETE FROM refs WHERE source = ?", p)
		return err
	})
	if err != nil {
		return err
	}
	g.dropSource(p)
	return nil
}

// SetReferences replaces the outgoing edges of source with edges to targets.
func (g *Graph) SetReferences(source string, targets []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	err := g.exec(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM refs WHERE source = ?", source); err != nil {
			return err
		}
		for _, t := range targets {
			if err := insertEdge(tx, t, source); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	g.dropSource(source)
	for _, t := range targets {
		g.add(t, source)
	}
	return nil
}

// Reset replaces the whole graph with edges.
func (g *Graph) Reset(edges []Edge) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	err := g.exec(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM refs"); err != nil {
			return err
		}
		for _, e := range edges {
			if err := insertEdge(tx, e.Target, e.Source); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	g.refs = make(map[string]map[string]struct{})
	for _, e := range edges {
		g.add(e.Target, e.Source)
	}
	return nil
}

// Edges returns every edge ordered by target, then source.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var edges []Edge
	for _, target := range sortedKeys(g.refs) {
		for _, src := range sortedKeys(g.refs[target]) {
			edges = append(edges, Edge{Target: target, Source: src})
		}
	}
	return edges
}

// exec runs fn in a transaction when the graph is persisted. Callers hold g.mu.
func (g *Graph) exec(fn func(tx *sql.Tx) error) error {
	if g.db == nil {
		return nil
	}
	tx, err := g.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (g *Graph) add(target, source string) {
	set, ok := g.refs[target]
	if !ok {
		set = make(map[string]struct{})
		g.refs[target] = set
	}
	set[source] = struct{}{}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (g *Graph) dropSource(source string) {
	for target, sources := range g.refs {
		delete(sources, source)
		if len(sources) == 0 {
			delete(g.refs, target)
		}
	}
}
