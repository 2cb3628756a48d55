package core

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ryotapoi/pocascade/internal/rewrite"
)

// Engine propagates moves, deletes and saves of artifacts through their referencers and
// keeps the reference graph consistent with the stored content.
type Engine struct {
	storage     Storage
	graph       *Graph
	rw          *rewrite.Rewriter
	claims      *claims
	log         *zap.Logger
	concurrency int
	db          *sql.DB
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithConcurrency bounds the number of referencers rewritten at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEngine returns an engine over storage and graph.
func NewEngine(storage Storage, graph *Graph, opts ...Option) *Engine {
	e := &Engine{
		storage:     storage,
		graph:       graph,
		rw:          rewrite.New(),
		claims:      newClaims(),
		log:         zap.NewNop(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open opens the workspace at root: its persisted reference graph and a FileStore.
// The caller must Close the engine.
func Open(root string, cfg Config, opts ...Option) (*Engine, error) {
	if _, err := ensureDataDir(root); err != nil {
		return nil, err
	}
	db, err := openDBAt(dbPath(root))
	if err != nil {
		return nil, err
	}
	graph, err := OpenGraph(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open index: %w", err)
	}
	store, err := NewFileStore(root, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	opts = append([]Option{WithConcurrency(cfg.Concurrency)}, opts...)
	e := NewEngine(store, graph, opts...)
	e.db = db
	return e, nil
}

// Close releases the index database, if the engine owns one.
func (e *Engine) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}

// Graph returns the engine's reference graph.
func (e *Engine) Graph() *Graph { return e.graph }

// Referencers returns the sorted paths that reference p.
func (e *Engine) Referencers(p string) ([]string, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	return without(e.graph.ReferencersOf(clean), clean), nil
}
