package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/multivault/crypto"
	"github.com/iov-one/multivault/errors"
	"github.com/spf13/cobra"
)

func keygenCmd(e *env) *cobra.Command {
	var (
		seed  string
		path  string
		out   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create an ed25519 key file",
		Long: `Create a new ed25519 private key and write it into a key file. With a seed
the key is derived from it using given SLIP-10 path, otherwise it is random.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = e.keyPath()
			}
			if _, err := os.Stat(out); err == nil && !force {
				return errors.Wrapf(errors.ErrDuplicate, "key file %q exists", out)
			}

			var key *crypto.PrivateKey
			if seed != "" {
				raw, err := hex.DecodeString(seed)
				if err != nil {
					return errors.Wrap(errors.ErrInput, "seed must be hex encoded")
				}
				if key, err = crypto.DeriveEd25519(raw, path); err != nil {
					return err
				}
			} else {
				key = crypto.GenPrivKeyEd25519()
			}
			if err := os.MkdirAll(filepath.Dir(out), 0700); err != nil {
				return errors.Wrapf(errors.ErrState, "create key directory: %s", err)
			}
			if err := crypto.SaveKey(out, key); err != nil {
				return err
			}

			addr := key.PublicKey().Address()
			b32, err := addr.Bech32()
			if err != nil {
				return errors.Wrap(err, "bech32 address")
			}
			fmt.Fprintf(e.out, "key:     %s\n", out)
			fmt.Fprintf(e.out, "address: %s\n", addr)
			fmt.Fprintf(e.out, "bech32:  %s\n", b32)
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "hex encoded seed to derive the key from")
	cmd.Flags().StringVar(&path, "path", crypto.DefaultDerivationPath, "derivation path used with a seed")
	cmd.Flags().StringVar(&out, "out", "", "key file, defaults to key.json in the home directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing key file")
	return cmd
}
