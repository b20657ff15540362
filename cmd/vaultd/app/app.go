/*
Package app links together all the various components
to construct the vaultd application.
*/
package app

import (
	"os"
	"path/filepath"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/app"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/store/iavl"
	"github.com/iov-one/multivault/x"
	"github.com/iov-one/multivault/x/auth"
	"github.com/iov-one/multivault/x/cash"
	"github.com/iov-one/multivault/x/collectible"
	"github.com/iov-one/multivault/x/object"
	"github.com/iov-one/multivault/x/token"
	"github.com/iov-one/multivault/x/utils"
	"github.com/iov-one/multivault/x/vault"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Controllers groups the controllers of all extensions, so that the router
// and the queries share them.
type Controllers struct {
	Cash         cash.BaseController
	Tokens       token.BaseController
	Collectibles collectible.BaseController
	Objects      object.BaseController
	Vaults       *vault.Controller
}

// NewControllers wires the vault controller to the asset extensions.
func NewControllers() Controllers {
	c := Controllers{
		Cash:         cash.NewController(cash.NewBucket()),
		Tokens:       token.NewController(token.NewBucket()),
		Collectibles: collectible.NewController(),
		Objects:      object.NewController(object.NewBucket()),
	}
	c.Vaults = vault.NewController(vault.Collaborators{
		Native:       c.Cash,
		Fungible:     c.Tokens,
		Collectibles: c.Collectibles,
		Objects:      c.Objects,
	})
	return c
}

// Authenticator returns the authentication used by all handlers. The
// signers are set by the caller of the engine.
func Authenticator() x.Authenticator {
	return auth.Authenticator{}
}

// Chain returns a chain of decorators, to handle logging, recovery,
// metrics and events. Metrics are registered with reg, if given.
func Chain(reg prometheus.Registerer) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics("vaultd", reg),
		utils.NewActionTagger(),
		// on DeliverTx, a failed message leaves no partial state
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all extensions.
func Router(authFn x.Authenticator, c Controllers) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, c.Cash)
	token.RegisterRoutes(r, authFn, c.Tokens)
	collectible.RegisterRoutes(r, authFn, c.Collectibles)
	object.RegisterRoutes(r, authFn, c.Objects)
	vault.RegisterRoutes(r, authFn, c.Vaults)
	return r
}

// Stack wires up the router with the decorator chain.
func Stack(c Controllers, reg prometheus.Registerer) weave.Handler {
	authFn := Authenticator()
	return Chain(reg).WithHandler(Router(authFn, c))
}

// TxCodec returns a codec that knows all messages of the application.
func TxCodec() *app.TxCodec {
	codec := app.NewTxCodec()
	codec.Register(cash.Msgs()...)
	codec.Register(token.Msgs()...)
	codec.Register(collectible.Msgs()...)
	codec.Register(object.Msgs()...)
	codec.Register(vault.Msgs()...)
	return codec
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		token.Initializer{},
		collectible.Initializer{},
		object.Initializer{},
		vault.Initializer{},
	)
}

// Application is a running vaultd instance.
type Application struct {
	*app.Engine
	Codec       *app.TxCodec
	Controllers Controllers

	store *iavl.CommitStore
}

// Open loads the application state kept in the data directory of home. An
// empty home gives an application kept in memory only.
func Open(home string, logger log.Logger, reg prometheus.Registerer) (*Application, error) {
	var kv *iavl.CommitStore
	if home == "" {
		kv = iavl.NewMemCommitStore()
	} else {
		dir := filepath.Join(home, "data")
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, errors.Wrapf(errors.ErrState, "create data directory: %s", err)
		}
		var err error
		if kv, err = iavl.NewCommitStore(dir, "vaultd"); err != nil {
			return nil, err
		}
	}

	c := NewControllers()
	engine, err := app.NewEngine(kv, Stack(c, reg),
		app.WithLogger(logger),
		app.WithInitializer(Initializers()))
	if err != nil {
		kv.Close()
		return nil, err
	}
	return &Application{
		Engine:      engine,
		Codec:       TxCodec(),
		Controllers: c,
		store:       kv,
	}, nil
}

// Close releases the store.
func (a *Application) Close() {
	a.store.Close()
}

// Submit runs the message through the engine on behalf of the signers.
// The first signer is the main signer.
func (a *Application) Submit(ctx weave.Context, tx *app.Tx, signers ...weave.Condition) (*weave.DeliverResult, error) {
	ctx = auth.WithSigners(ctx, signers...)
	if _, err := a.Check(ctx, tx); err != nil {
		return nil, err
	}
	return a.Deliver(ctx, tx)
}
