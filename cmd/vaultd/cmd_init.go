package main

import (
	"fmt"
	"os"

	"github.com/iov-one/multivault"
	weaveapp "github.com/iov-one/multivault/app"
	"github.com/iov-one/multivault/cmd/vaultd/app"
	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/x/vault"
	"github.com/spf13/cobra"
)

func initCmd(e *env) *cobra.Command {
	var (
		chainID string
		admin   string
		fee     uint64
		feeKind string
		genesis string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the genesis file and initialize the state",
		Long: `Write the genesis file into the home directory and load it into a new
state. An existing genesis file can be given instead of the flags describing
the vault configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(e.home(), 0700); err != nil {
				return errors.Wrapf(errors.ErrState, "create home directory: %s", err)
			}

			var gen *weaveapp.Genesis
			if genesis != "" {
				var err error
				if gen, err = weaveapp.LoadGenesis(genesis); err != nil {
					return err
				}
			} else {
				conf := app.GenesisConfig{ChainID: chainID}
				if admin != "" {
					addr, err := weave.ParseAddress(admin)
					if err != nil {
						return errors.Wrap(err, "admin")
					}
					conf.Vault = vault.Configuration{Admin: addr, CreationFee: fee, FeeAssetKind: feeKind}
				} else if fee != 0 {
					return errors.Wrap(errors.ErrInput, "a creation fee requires an admin")
				}
				var err error
				if gen, err = app.GenGenesis(conf); err != nil {
					return err
				}
			}
			if err := weaveapp.SaveGenesis(e.genesisPath(), gen); err != nil {
				return err
			}

			a, err := e.open()
			if err != nil {
				return err
			}
			defer a.Close()
			id, err := a.InitChain(gen)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "initialized chain %s at version %d\n", gen.ChainID, id.Version)
			return nil
		},
	}
	cmd.Flags().StringVar(&chainID, "chain-id", app.DefaultChainID, "chain id")
	cmd.Flags().StringVar(&admin, "admin", "", "address of the vault admin, receiving the creation fees")
	cmd.Flags().Uint64Var(&fee, "fee", 0, "vault creation fee")
	cmd.Flags().StringVar(&feeKind, "fee-kind", "IOV", "asset kind the creation fee is paid in")
	cmd.Flags().StringVar(&genesis, "genesis", "", "use this genesis file instead of generating one")
	return cmd
}
