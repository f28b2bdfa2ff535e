package main

import (
	"fmt"
	"os"

	"github.com/aretw0/lindenmayer/internal/dto"
	"github.com/aretw0/lindenmayer/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <grammar>",
	Short: "Show the axiom and rules of a grammar",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, _, _, closeStore := setup(cmd)
		defer closeStore()

		def, err := eng.Inspect(cmd.Context(), args[0])
		if err != nil {
			fail("%v", err)
		}
		doc := dto.FromDomain(def)

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "yaml":
			if err := dto.EncodeYAML(os.Stdout, doc); err != nil {
				fail("%v", err)
			}
		case "text":
			fmt.Print(tui.GrammarTable(doc))
		case "auto":
			if !tui.IsTerminal(os.Stdout) {
				fmt.Print(tui.GrammarTable(doc))
				return
			}
			out, err := tui.NewRenderer()(tui.GrammarMarkdown(doc))
			if err != nil {
				fail("%v", err)
			}
			fmt.Print(out)
		default:
			fail("unknown format %q (want auto, text or yaml)", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().String("format", "auto", "Output format: auto, text or yaml")
}
