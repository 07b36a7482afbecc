// Package room connects the poker engine to the outside world: it owns the
// live tables, moves chips between the ledger and table stacks, and feeds
// state to connected websocket clients.
package room

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"chiproom-server/internal/util"
	"chiproom-server/pkg/ledger"
	"chiproom-server/pkg/poker/holdem"
)

// ErrTableNotFound is an error when a table UUID is unknown
var ErrTableNotFound = errors.New("table not found")

// Registry owns every live table. The calling layer holds one registry and
// passes table handles around; nothing here is global.
type Registry struct {
	log         logrus.FieldLogger
	ledger      *ledger.Ledger
	turnTimeout time.Duration

	mu     sync.RWMutex
	tables map[string]*Table
}

// NewRegistry returns an empty table registry. A turnTimeout of zero
// disables auto-folding slow players.
func NewRegistry(logger logrus.FieldLogger, chips *ledger.Ledger, turnTimeout time.Duration) *Registry {
	return &Registry{
		log:         logger,
		ledger:      chips,
		turnTimeout: turnTimeout,
		tables:      make(map[string]*Table),
	}
}

// CreateTable creates and registers a new table. An empty name gets a
// generated one.
func (r *Registry) CreateTable(name string, opts holdem.Options) (*Table, error) {
	if name == "" {
		name = util.GetRandomName()
	}

	id := uuid.New().String()

	log := r.log.WithField("table", id)
	game, err := holdem.New(log, opts)
	if err != nil {
		return nil, err
	}

	t := &Table{
		UUID:        id,
		Name:        name,
		log:         log,
		ledger:      r.ledger,
		game:        game,
		turnTimeout: r.turnTimeout,
		clients:     make(map[*Client]bool),
	}

	r.mu.Lock()
	r.tables[id] = t
	r.mu.Unlock()

	log.WithField("name", name).Info("table created")
	return t, nil
}

// Table returns the table with the given UUID
func (r *Registry) Table(id string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[id]
	if !ok {
		return nil, ErrTableNotFound
	}

	return t, nil
}

// Tables returns every registered table
func (r *Registry) Tables() []*Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make([]*Table, 0, len(r.tables))
	for _, t := range r.tables {
		tables = append(tables, t)
	}

	return tables
}

// RemoveTable unregisters a table and disconnects its clients
func (r *Registry) RemoveTable(id string) error {
	r.mu.Lock()
	t, ok := r.tables[id]
	if ok {
		delete(r.tables, id)
	}
	r.mu.Unlock()

	if !ok {
		return ErrTableNotFound
	}

	t.shutdown()
	return nil
}
