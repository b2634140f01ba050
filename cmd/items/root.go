package main

import (
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-items/internal/config"
	"github.com/KirkDiggler/rpg-items/internal/orchestrators/item"
	"github.com/KirkDiggler/rpg-items/internal/pkg/logging"
)

// app carries the state shared by every command for one invocation
type app struct {
	viper      *viper.Viper
	configPath string
	// logOutput defaults to stderr so stdout only carries command results
	logOutput io.Writer

	logger  zerolog.Logger
	service item.Service
	cleanup func() error
}

func newRootCmd(a *app) *cobra.Command {
	if a.viper == nil {
		a.viper = viper.New()
	}

	rootCmd := &cobra.Command{
		Use:           "rpg-items",
		Short:         "Manage the RPG items container",
		Long:          `rpg-items creates, edits and migrates the persisted items container used by the game client.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.String("backend", "", "store backend: memory, file or redis")
	flags.String("path", "", "items document used by the file backend")
	flags.String("key-prefix", "", "prefix for the redis storage key")
	flags.String("redis-endpoint", "", "redis address (host:port)")
	flags.String("log-level", "", "log level")
	flags.Bool("log-pretty", false, "human readable logs")

	bindings := map[string]string{
		"store.backend":    "backend",
		"store.path":       "path",
		"store.key_prefix": "key-prefix",
		"redis.endpoint":   "redis-endpoint",
		"log.level":        "log-level",
		"log.pretty":       "log-pretty",
	}
	for key, flag := range bindings {
		// Lookup cannot fail for flags registered above
		_ = a.viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		newCreateCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newCheckCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.viper, a.configPath)
	if err != nil {
		return err
	}

	out := a.logOutput
	if out == nil {
		out = os.Stderr
	}
	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: out,
	})
	if err != nil {
		return err
	}
	a.logger, _ = logging.WithRunID(logger)

	if a.service != nil {
		return nil
	}

	service, cleanup, err := buildService(cmd.Context(), cfg, &a.logger)
	if err != nil {
		return err
	}
	a.service = service
	a.cleanup = cleanup
	return nil
}

func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	return err
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(data, '\n'))
	return err
}
