package main

import (
	"strconv"

	"github.com/iov-one/multivault"
	"github.com/iov-one/multivault/cmd/vaultd/app"
	"github.com/iov-one/multivault/errors"
	"github.com/spf13/cobra"
)

func queryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the state of vaults and proposals",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "vault VAULT_ID",
			Short: "Print a vault with its active participants and treasury",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				vaultID, err := parseID("vault", args[0])
				if err != nil {
					return err
				}
				return e.query(func(a *app.Application, db weave.ReadOnlyKVStore) (interface{}, error) {
					return a.Controllers.Vaults.VaultDetails(db, vaultID)
				})
			},
		},
		&cobra.Command{
			Use:   "vaults-for ADDRESS",
			Short: "List the vaults an address participates in",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				addr, err := weave.ParseAddress(args[0])
				if err != nil {
					return err
				}
				return e.query(func(a *app.Application, db weave.ReadOnlyKVStore) (interface{}, error) {
					return a.Controllers.Vaults.VaultIDsFor(db, addr)
				})
			},
		},
		&cobra.Command{
			Use:   "proposal VAULT_ID PROPOSAL_ID",
			Short: "Print a proposal with its votes and decision",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				vaultID, err := parseID("vault", args[0])
				if err != nil {
					return err
				}
				proposalID, err := strconv.ParseUint(args[1], 10, 64)
				if err != nil {
					return errors.Wrapf(errors.ErrInput, "invalid proposal id %q", args[1])
				}
				return e.query(func(a *app.Application, db weave.ReadOnlyKVStore) (interface{}, error) {
					return a.Controllers.Vaults.ProposalDetails(db, vaultID, proposalID)
				})
			},
		},
		&cobra.Command{
			Use:   "pending VAULT_ID",
			Short: "List proposals open for voting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				vaultID, err := parseID("vault", args[0])
				if err != nil {
					return err
				}
				return e.query(func(a *app.Application, db weave.ReadOnlyKVStore) (interface{}, error) {
					return a.Controllers.Vaults.PendingProposals(db, vaultID)
				})
			},
		},
		&cobra.Command{
			Use:   "approved VAULT_ID",
			Short: "List approved proposals waiting for execution",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				vaultID, err := parseID("vault", args[0])
				if err != nil {
					return err
				}
				return e.query(func(a *app.Application, db weave.ReadOnlyKVStore) (interface{}, error) {
					return a.Controllers.Vaults.ApprovedProposals(db, vaultID)
				})
			},
		},
	)
	return cmd
}

// query opens the application, runs fn against the committed state and
// prints its result.
func (e *env) query(fn func(*app.Application, weave.ReadOnlyKVStore) (interface{}, error)) error {
	a, err := e.open()
	if err != nil {
		return err
	}
	defer a.Close()

	var res interface{}
	err = a.View(func(db weave.ReadOnlyKVStore) error {
		var err error
		res, err = fn(a, db)
		return err
	})
	if err != nil {
		return err
	}
	return printJSON(e.out, res)
}

// parseID parses a vault id, which are never zero.
func parseID(name, s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Wrapf(errors.ErrInput, "invalid %s id %q", name, s)
	}
	return id, nil
}
