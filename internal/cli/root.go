// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the coro command: an external driver that creates
// tasks, resumes them until they finish, and prints what they emit.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"code.hybscloud.com/coro/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Flags are bound to the global viper
// instance, so only one tree should be executing at a time.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "coro",
		Short: "Drive single-threaded cooperative tasks",
		Long: `coro drives cooperative tasks from an external loop: every task is
created suspended, resumed until it reports it cannot continue, and its
emitted lines are printed between resumes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return initConfig(cfgFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.config/coro/config.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text or json")
	pf.String("trace", "", "write the frame transition trace to this YAML file")
	_ = viper.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("trace.file", pf.Lookup("trace"))

	root.AddCommand(newRunCmd(), newChainCmd())
	return root
}

func initConfig(cfgFile string) error {
	// Defaults first so they apply without a config file.
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
	}

	// CORO_CHAIN_DEPTH for chain.depth
	viper.SetEnvPrefix("CORO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}
