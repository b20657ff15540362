package app

import (
	"encoding/json"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/app"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/x/cash"
	"github.com/iov-one/multivault/x/vault"
)

// DefaultChainID is used when the genesis does not declare one.
const DefaultChainID = "vaultd-local"

// GenesisConfig describes the state a new chain starts with.
type GenesisConfig struct {
	ChainID string
	// Vault is the vault extension configuration. A zero value runs
	// without an admin and without a creation fee.
	Vault vault.Configuration
	// Accounts are funded with native assets.
	Accounts []cash.GenesisAccount
}

// GenGenesis builds the genesis document for the configuration.
func GenGenesis(conf GenesisConfig) (*app.Genesis, error) {
	chainID := conf.ChainID
	if chainID == "" {
		chainID = DefaultChainID
	}
	if !weave.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}

	state := weave.Options{}
	if len(conf.Vault.Admin) != 0 {
		if err := conf.Vault.Validate(); err != nil {
			return nil, errors.Wrap(err, "vault configuration")
		}
		raw, err := json.Marshal(map[string]vault.Configuration{"vault": conf.Vault})
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot serialize vault configuration")
		}
		state["conf"] = raw
	}
	accounts := conf.Accounts
	if conf.Vault.CreationFee > 0 {
		// The admin must be able to receive the fees.
		accounts = append(accounts, cash.GenesisAccount{
			Address: conf.Vault.Admin,
			Wallet:  cash.Wallet{Balances: []cash.Balance{{Kind: conf.Vault.FeeAssetKind}}},
		})
	}
	if len(accounts) != 0 {
		raw, err := json.Marshal(accounts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot serialize accounts")
		}
		state["cash"] = raw
	}
	return &app.Genesis{ChainID: chainID, AppState: state}, nil
}
