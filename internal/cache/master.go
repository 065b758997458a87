// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tomtom215/albumatlas/internal/logging"
	"github.com/tomtom215/albumatlas/internal/metrics"
	"github.com/tomtom215/albumatlas/internal/models"
)

// ErrClosed is returned by Load after Close.
var ErrClosed = errors.New("master catalog closed")

// State is the lifecycle state of the master catalog.
type State int

// Catalog states. The only transitions are empty -> loading,
// loading -> loaded and loading -> empty.
const (
	StateEmpty State = iota
	StateLoading
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// BuildFunc produces the sorted master catalog. It must honor ctx.
type BuildFunc func(ctx context.Context) ([]models.EnrichedItem, error)

// Snapshot is a point-in-time view of the master catalog.
// Items is shared and must not be modified.
type Snapshot struct {
	State     State
	Items     []models.EnrichedItem
	BuildID   string
	BuiltAt   time.Time
	LastError string
}

// Observer is notified after every state change. Calls are made outside
// the master's lock, from the goroutine that caused the change.
type Observer interface {
	CatalogStateChanged(snap Snapshot)
}

// Master holds the process-wide enriched catalog. The catalog is built at
// most once at a time, on first demand, and never rebuilt once loaded.
type Master struct {
	build   BuildFunc
	timeout time.Duration

	baseCtx    context.Context
	cancelBase context.CancelFunc
	wg         sync.WaitGroup

	mu        sync.Mutex
	state     State
	items     []models.EnrichedItem
	buildID   string
	builtAt   time.Time
	lastErr   error
	done      chan struct{} // closed when the current build finishes
	closed    bool
	observers []Observer
}

// NewMaster creates an empty master catalog. Builds run under a context
// derived from parent, bounded by timeout (0 = unbounded), and are canceled
// by Close.
func NewMaster(parent context.Context, build BuildFunc, timeout time.Duration) *Master {
	ctx, cancel := context.WithCancel(parent)
	metrics.SetCatalogState(StateEmpty.String())
	return &Master{
		build:      build,
		timeout:    timeout,
		baseCtx:    ctx,
		cancelBase: cancel,
		state:      StateEmpty,
	}
}

// AddObserver registers o for state change notifications.
func (m *Master) AddObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// State returns the current state without triggering a build.
func (m *Master) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Peek returns the current snapshot without triggering a build.
func (m *Master) Peek() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Snapshot returns the current snapshot, starting a build first if the
// catalog is empty. It never blocks on the build.
func (m *Master) Snapshot() Snapshot {
	return m.ensureBuild()
}

// Wait blocks until the in-flight build, if any, finishes or ctx is done,
// then returns the current snapshot. It does not start a build.
func (m *Master) Wait(ctx context.Context) Snapshot {
	m.mu.Lock()
	done := m.done
	loading := m.state == StateLoading
	m.mu.Unlock()

	if loading && done != nil {
		select {
		case <-done:
		case <-ctx.Done():
		}
	}
	return m.Peek()
}

// Load starts a build if needed and waits for the catalog to be loaded.
// It returns the build error when the build fails and ctx.Err() when ctx
// is done first.
func (m *Master) Load(ctx context.Context) (Snapshot, error) {
	snap := m.ensureBuild()
	if snap.State == StateLoaded {
		return snap, nil
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return snap, ErrClosed
	}
	done := m.done
	m.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return m.Peek(), ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	snap = m.snapshotLocked()
	if m.state != StateLoaded {
		if m.lastErr != nil {
			return snap, m.lastErr
		}
		return snap, ErrClosed
	}
	return snap, nil
}

// Close cancels any in-flight build and waits for it to exit. After Close
// the catalog never starts another build.
func (m *Master) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.cancelBase()
	m.wg.Wait()
}

// ensureBuild moves empty -> loading and starts the build goroutine.
func (m *Master) ensureBuild() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateEmpty || m.closed {
		return m.snapshotLocked()
	}

	m.state = StateLoading
	m.buildID = logging.GenerateCorrelationID()
	m.done = make(chan struct{})

	ctx := logging.ContextWithCorrelationID(m.baseCtx, m.buildID)
	var cancel context.CancelFunc
	if m.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	snap := m.snapshotLocked()
	m.wg.Add(1)
	go m.run(ctx, cancel, m.done, snap)

	metrics.SetCatalogState(StateLoading.String())
	logging.Ctx(ctx).Info().Msg("Master catalog build started")
	return snap
}

// run executes one build. Observers see the loading snapshot and the final
// snapshot from this goroutine, in that order.
func (m *Master) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}, loading Snapshot) {
	defer m.wg.Done()
	defer cancel()

	m.notify(loading)

	start := time.Now()
	items, err := m.build(ctx)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	elapsed := time.Since(start)

	m.mu.Lock()
	var result string
	if err != nil {
		m.state = StateEmpty
		m.lastErr = err
		result = "failed"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			result = "canceled"
		}
	} else {
		m.state = StateLoaded
		m.items = items
		m.builtAt = time.Now()
		m.lastErr = nil
		result = "loaded"
		if len(items) == 0 {
			result = "empty"
		}
	}
	close(done)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	metrics.RecordCatalogBuild(result, elapsed, len(items))
	metrics.SetCatalogState(snap.State.String())

	log := logging.Ctx(ctx)
	if err != nil {
		log.Error().Err(err).Str("result", result).Dur("duration", elapsed).Msg("Master catalog build failed")
	} else {
		log.Info().Int("items", len(items)).Str("result", result).Dur("duration", elapsed).Msg("Master catalog loaded")
	}

	m.notify(snap)
}

func (m *Master) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:   m.state,
		BuildID: m.buildID,
		BuiltAt: m.builtAt,
	}
	if m.state == StateLoaded {
		snap.Items = m.items
	}
	if m.lastErr != nil {
		snap.LastError = m.lastErr.Error()
	}
	return snap
}

func (m *Master) notify(snap Snapshot) {
	m.mu.Lock()
	observers := append([]Observer(nil), m.observers...)
	m.mu.Unlock()

	for _, o := range observers {
		o.CatalogStateChanged(snap)
	}
}
