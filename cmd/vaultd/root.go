package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/multivault/cmd/vaultd/app"
	"github.com/iov-one/multivault/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagDebug    = "debug"
)

// env keeps the settings shared by all commands. Every flag can be set
// through a VAULTD_ prefixed environment variable as well, for example
// VAULTD_HOME or VAULTD_LOG_LEVEL.
type env struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	e := &env{v: viper.New(), out: out, errOut: errOut}
	e.v.SetEnvPrefix("VAULTD")
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "vaultd",
		Short:         "Multi-party approval vaults",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".vaultd")
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level: debug, info, error or none")
	root.PersistentFlags().Bool(flagDebug, false, "print detailed errors")
	if err := e.v.BindPFlags(root.PersistentFlags()); err != nil {
		panic(err)
	}

	root.AddCommand(
		initCmd(e),
		keygenCmd(e),
		submitCmd(e),
		queryCmd(e),
	)
	return root
}

func (e *env) home() string {
	return e.v.GetString(flagHome)
}

func (e *env) debug() bool {
	return e.v.GetBool(flagDebug)
}

// logger writes to the error output, filtered by the configured level.
func (e *env) logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(e.errOut)).With("module", "vaultd")
	opt, err := log.AllowLevel(e.v.GetString(flagLogLevel))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(logger, opt), nil
}

// open loads the application kept in the home directory.
func (e *env) open() (*app.Application, error) {
	logger, err := e.logger()
	if err != nil {
		return nil, err
	}
	return app.Open(e.home(), logger, nil)
}

func (e *env) genesisPath() string {
	return filepath.Join(e.home(), "genesis.json")
}

func (e *env) keyPath() string {
	return filepath.Join(e.home(), "key.json")
}
