package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/repository"
)

// Bootstrapper seeds an empty catalog on first run.
type Bootstrapper interface {
	Bootstrap(ctx context.Context, tx *Tx) error
}

// Options configure a Store. Zero values fall back to defaults.
type Options struct {
	Config    model.Config
	Bootstrap Bootstrapper
	Now       func() time.Time
	NewID     func() string
}

// Store owns every Product, Branch and Sale of the process.
//
// All mutations go through Update, which holds the write lock for the whole
// validate → mutate → persist sequence. Update works on a copy of the state
// and swaps it in only after the repository accepted the new documents, so a
// failed operation or a failed Save leaves memory exactly as it was.
type Store struct {
	mu    sync.RWMutex
	repo  repository.StateRepository
	state state
	cfg   model.Config
	boot  Bootstrapper
	nowFn func() time.Time
	newID func() string
}

// New builds an empty store over repo. Call Load before use.
func New(repo repository.StateRepository, opts Options) *Store {
	s := &Store{
		repo:  repo,
		state: emptyState(),
		cfg:   opts.Config,
		boot:  opts.Bootstrap,
		nowFn: opts.Now,
		newID: opts.NewID,
	}
	if s.nowFn == nil {
		s.nowFn = func() time.Time { return time.Now().Round(0) }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Load reads the documents from the repository, bootstrapping the catalog
// when products or branches are missing, malformed or empty. Missing sales
// only reset the sale log.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Reload discards the in-memory state and loads it again from storage.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.Info().Msg("reloading state from storage")
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) error {
	docs, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	st := state{products: docs.Products, branches: docs.Branches, sales: docs.Sales}
	if st.sales == nil {
		log.Warn().Msg("sales document missing or malformed, starting with an empty sale log")
		st.sales = []model.Sale{}
	}
	if docs.Products != nil && len(docs.Branches) > 0 {
		s.state = st
		return nil
	}

	st.products = []model.Product{}
	st.branches = model.Branches{}
	s.state = st
	if s.boot == nil {
		log.Warn().Msg("catalog missing and no bootstrapper configured")
		return nil
	}
	log.Info().Msg("catalog missing, running first-run bootstrap")
	return s.commitLocked(ctx, func(tx *Tx) error { return s.boot.Bootstrap(ctx, tx) })
}

// Update runs fn against a copy of the state and commits it when fn succeeds
// and the repository saved the result. Errors from fn are returned as is;
// save failures come back as *repository.PersistenceError.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, fn)
}

func (s *Store) commitLocked(ctx context.Context, fn func(tx *Tx) error) error {
	tx := &Tx{
		state: s.state.clone(),
		cfg:   s.cfg,
		now:   s.nowFn(),
		newID: s.newID,
	}
	if err := fn(tx); err != nil {
		return err
	}
	// A caller that goes away after fn succeeded must not lose the mutation.
	if err := s.repo.Save(context.WithoutCancel(ctx), tx.state.documents()); err != nil {
		log.Error().Err(err).Msg("save failed, mutation discarded")
		return err
	}
	s.state = tx.state
	return nil
}

// View runs fn with a read-only view of the current state. Writers are
// excluded while fn runs.
func (s *Store) View(fn func(v View) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(View{state: &s.state, cfg: s.cfg})
}

// Config returns the engine configuration record.
func (s *Store) Config() model.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Now returns the store clock reading.
func (s *Store) Now() time.Time { return s.nowFn() }

// Close writes the current state one last time and releases the repository.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saveErr := s.repo.Save(ctx, s.state.documents())
	if saveErr != nil {
		log.Error().Err(saveErr).Msg("final save failed")
	}
	if err := s.repo.Close(); err != nil && saveErr == nil {
		return err
	}
	return saveErr
}

// saleID derives a short VTA-XXXXXX identifier from the id generator.
func saleID(newID func() string) string {
	raw := strings.ToUpper(strings.ReplaceAll(newID(), "-", ""))
	if len(raw) > 6 {
		raw = raw[:6]
	}
	return "VTA-" + raw
}
