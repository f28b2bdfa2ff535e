package main

import (
	"errors"
	"os"

	"github.com/aretw0/lindenmayer"
	"github.com/aretw0/lindenmayer/internal/cli"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand <grammar>",
	Short: "Stream the expansion of a grammar to stdout",
	Long: `Expands the named grammar to --depth rounds and writes the symbols as
they are produced. Stochastic grammars print the seed they used on stderr
(with --debug) and accept --seed to replay an output.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, _, logger, closeStore := setup(cmd)
		defer closeStore()

		req, err := requestFlags(cmd)
		if err != nil {
			fail("%v", err)
		}
		wrap, _ := cmd.Flags().GetInt("wrap")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		run, err := eng.Open(ctx, args[0], req)
		if err != nil {
			fail("%v", err)
		}
		defer run.Close()
		if seed, ok := run.Seed(); ok {
			logger.Info("stochastic expansion", "seed", seed)
		}

		if _, err := lindenmayer.Stream(os.Stdout, run, wrap); err != nil {
			if ctx.Signal() != nil && errors.Is(err, ctx.Err()) {
				return
			}
			fail("%v", err)
		}
	},
}

// requestFlags reads the flags shared by expand and turtle.
func requestFlags(cmd *cobra.Command) (lindenmayer.Request, error) {
	flags := cmd.Flags()
	depth, _ := flags.GetInt("depth")
	limit, _ := flags.GetInt64("limit")

	req := lindenmayer.Request{Depth: depth, Limit: limit}
	if flags.Changed("seed") {
		seed, err := flags.GetUint64("seed")
		if err != nil {
			return req, err
		}
		req.Seed = &seed
	}
	return req, nil
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("depth", "n", 4, "Number of rewrite rounds")
	cmd.Flags().Uint64("seed", 0, "Seed for stochastic grammars (random when unset)")
	cmd.Flags().Int64("limit", 0, "Stop after this many symbols, 0 for no limit")
}

func init() {
	rootCmd.AddCommand(expandCmd)
	addRequestFlags(expandCmd)
	expandCmd.Flags().Int("wrap", 0, "Insert a newline every N symbols")
}
