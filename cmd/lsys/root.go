package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/lindenmayer"
	"github.com/aretw0/lindenmayer/internal/cli"
	"github.com/aretw0/lindenmayer/internal/config"
	"github.com/aretw0/lindenmayer/internal/logging"
	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lsys",
	Short: "lsys expands L-system grammars lazily",
	Long: `lsys stores L-system grammars and expands them one symbol at a time,
so even very deep expansions run in memory proportional to the depth.

Settings come from LSYS_* environment variables (optionally in a .env file)
and can be overridden by flags.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("env-file", ".env", "Dotenv file with LSYS_* settings")
	pf.String("store", "", "Grammar store: memory, file or redis (env LSYS_STORE)")
	pf.String("dir", "", "Directory of the file store (env LSYS_DIR)")
	pf.String("redis-addr", "", "Address of the redis store (env LSYS_REDIS_ADDR)")
	pf.Int("max-depth", 0, "Largest depth a request may ask for, 0 for no limit (env LSYS_MAX_DEPTH)")
	pf.Bool("debug", false, "Log to stderr at debug level (env LSYS_DEBUG)")
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store, _ = flags.GetString("store")
	}
	if flags.Changed("dir") {
		cfg.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth, _ = flags.GetInt("max-depth")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	return cfg, cfg.Validate()
}

// setup loads the configuration and builds the engine every command uses.
func setup(cmd *cobra.Command, hooks ...domain.LifecycleHooks) (*lindenmayer.Engine, config.Config, *slog.Logger, func() error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	logger := logging.ForDebug(cfg.Debug)

	eng, closeStore, err := cli.NewEngine(cfg, logger, hooks...)
	if err != nil {
		fail("%v", err)
	}
	return eng, cfg, logger, closeStore
}

// fail prints a standardized error and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
