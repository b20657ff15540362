package app

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Engine processes operations against a commit store, one at a time.
//
// Each operation runs on its own cache wrap of the committed state. The wrap
// is written and committed only when the operation succeeds, so a failed
// operation leaves no trace.
type Engine struct {
	mu sync.Mutex

	store   weave.CommitKVStore
	handler weave.Handler
	init    weave.Initializer
	logger  log.Logger
	now     func() time.Time

	// chainID is loaded from db in initialization
	// saved once in InitChain
	chainID string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine and passed to the handlers.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock sets the time source used as the block time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithInitializer sets the genesis initializer.
func WithInitializer(init weave.Initializer) Option {
	return func(e *Engine) {
		e.init = init
	}
}

// NewEngine loads the latest version of the store and returns an engine
// dispatching all operations to the given handler.
func NewEngine(store weave.CommitKVStore, handler weave.Handler, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:   store,
		handler: handler,
		logger:  log.NewNopLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	cache := store.CacheWrap()
	chainID, err := loadChainID(cache)
	cache.Discard()
	if err != nil {
		return nil, err
	}
	e.chainID = chainID
	return e, nil
}

// ChainID returns the chain id, empty if the chain was not initialized.
func (e *Engine) ChainID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chainID
}

// InitChain loads the genesis state and commits it. It can be called only
// once in the lifetime of a store.
func (e *Engine) InitChain(gen *Genesis) (weave.CommitID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID != "" {
		return weave.CommitID{}, errors.Wrapf(errors.ErrState, "already initialized for chain %q", e.chainID)
	}

	cache := e.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return weave.CommitID{}, err
	}
	if e.init != nil {
		if err := e.init.FromGenesis(gen.AppState, cache); err != nil {
			cache.Discard()
			return weave.CommitID{}, errors.Wrap(err, "initialize from genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return weave.CommitID{}, errors.Wrap(err, "write genesis state")
	}
	id, err := e.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit genesis state")
	}
	e.chainID = gen.ChainID
	e.logger.Info("chain initialized", "chain_id", gen.ChainID, "version", id.Version)
	return id, nil
}

// Deliver executes the transaction and commits its result. A failed
// transaction does not modify the state.
func (e *Engine) Deliver(ctx weave.Context, tx weave.Tx) (*weave.DeliverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, err := e.context(ctx, "deliver_tx", tx)
	if err != nil {
		return nil, err
	}

	cache := e.store.CacheWrap()
	res, err := e.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write state")
	}
	if _, err := e.store.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return res, nil
}

// Check validates the transaction against the current state. The state is
// never modified.
func (e *Engine) Check(ctx weave.Context, tx weave.Tx) (*weave.CheckResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, err := e.context(ctx, "check_tx", tx)
	if err != nil {
		return nil, err
	}
	cache := e.store.CacheWrap()
	defer cache.Discard()
	return e.handler.Check(ctx, cache, tx)
}

// View runs fn against the committed state. Any write done by fn is dropped.
func (e *Engine) View(fn func(db weave.ReadOnlyKVStore) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache := e.store.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}

// context returns the block context for the next operation.
func (e *Engine) context(ctx weave.Context, call string, tx weave.Tx) (weave.Context, error) {
	if e.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	last, err := e.store.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(err, "latest version")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = weave.WithHeight(ctx, last.Version+1)
	ctx = weave.WithChainID(ctx, e.chainID)
	ctx = weave.WithBlockTime(ctx, e.now().UTC())
	ctx = weave.WithLogger(ctx, e.logger)
	ctx = weave.WithLogInfo(ctx, "call", call, "path", weave.GetPath(tx))
	return ctx, nil
}
