package main

import (
	"fmt"
	"os"

	"github.com/aretw0/lindenmayer/internal/dto"
	"github.com/aretw0/lindenmayer/internal/presentation/tui"
	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.yaml>...",
	Short: "Check grammar documents and optionally store them",
	Long: `Parses every YAML document of the given files and reports whether each
one is a valid grammar. With --save the valid ones are written to the store.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		save, _ := cmd.Flags().GetBool("save")

		defs, invalid := validateFiles(args)
		if save && len(defs) > 0 {
			eng, _, _, closeStore := setup(cmd)
			defer closeStore()
			for _, def := range defs {
				if err := eng.Define(cmd.Context(), def); err != nil {
					fail("%v", err)
				}
				fmt.Printf("saved %s\n", def.Name)
			}
		}

		if invalid > 0 {
			fmt.Printf("Validation failed: %d invalid document(s)\n", invalid)
			os.Exit(1)
		}
		fmt.Println("All grammars are valid! ✅")
	},
}

// validateFiles reports every document and returns the valid definitions
// together with the number of failures.
func validateFiles(paths []string) ([]*domain.Definition, int) {
	var defs []*domain.Definition
	invalid := 0

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			fmt.Printf("%s: %s %v\n", path, tui.Status(os.Stdout, "error", false), err)
			invalid++
			continue
		}
		docs, err := dto.DecodeYAML(f)
		f.Close()
		if err != nil {
			fmt.Printf("%s: %s %v\n", path, tui.Status(os.Stdout, "invalid", false), err)
			invalid++
			continue
		}

		for _, doc := range docs {
			def, err := doc.ToDomain()
			if err != nil {
				fmt.Printf("%s: %s %s: %v\n", path, tui.Status(os.Stdout, "invalid", false), doc.Name, err)
				invalid++
				continue
			}
			fmt.Printf("%s: %s %s\n", path, tui.Status(os.Stdout, "ok", true), def.Name)
			defs = append(defs, def)
		}
	}
	return defs, invalid
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("save", false, "Store the valid grammars")
}
