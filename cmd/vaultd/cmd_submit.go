package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/multivault/app"
	"github.com/iov-one/multivault/crypto"
	"github.com/iov-one/multivault/errors"
	"github.com/spf13/cobra"
)

// submitResult is printed after a message is processed.
type submitResult struct {
	Code uint32            `json:"code"`
	Log  string            `json:"log,omitempty"`
	Data string            `json:"data,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
}

func submitCmd(e *env) *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "submit [flags] MSG_FILE",
		Short: "Process a message signed with the local key",
		Long: `Read a message in its JSON form, for example

  {"path": "vault/vote", "msg": {"vault_id": 1, "proposal_id": 1, "approve": true}}

and process it on behalf of the key. Use "-" to read from the standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyFile == "" {
				keyFile = e.keyPath()
			}
			key, err := crypto.LoadKey(keyFile)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			a, err := e.open()
			if err != nil {
				return err
			}
			defer a.Close()

			tx, err := a.Codec.DecodeJSON(raw)
			if err != nil {
				return err
			}
			res, submitErr := a.Submit(context.Background(), tx, key.PublicKey().Condition())
			resp := app.DeliverTxResponse(res, submitErr, e.debug())

			out := submitResult{
				Code: resp.Code,
				Log:  resp.Log,
				Data: hex.EncodeToString(resp.Data),
			}
			if len(resp.Tags) != 0 {
				out.Tags = make(map[string]string, len(resp.Tags))
				for _, t := range resp.Tags {
					out.Tags[string(t.Key)] = string(t.Value)
				}
			}
			if err := printJSON(e.out, out); err != nil {
				return err
			}
			return submitErr
		},
	}
	cmd.Flags().StringVar(&keyFile, "key", "", "key file, defaults to key.json in the home directory")
	return cmd
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if name == "-" {
		raw, err = ioutil.ReadAll(stdin)
	} else {
		raw, err = ioutil.ReadFile(name)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "message file %q", name)
		}
		return nil, errors.Wrapf(errors.ErrInput, "read message: %s", err)
	}
	return raw, nil
}

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot serialize: %s", err)
	}
	_, err = w.Write(append(raw, '\n'))
	return err
}
