package main

import (
	"fmt"

	"github.com/aretw0/lindenmayer/pkg/catalog"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored grammars",
	Run: func(cmd *cobra.Command, args []string) {
		eng, _, _, closeStore := setup(cmd)
		defer closeStore()

		names, err := eng.Grammars(cmd.Context())
		if err != nil {
			fail("%v", err)
		}
		if len(names) == 0 {
			fmt.Println("No grammars stored. Run 'lsys seed' to add the bundled catalog.")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the bundled catalog of classic grammars to the store",
	Run: func(cmd *cobra.Command, args []string) {
		eng, _, _, closeStore := setup(cmd)
		defer closeStore()

		added, err := catalog.Seed(cmd.Context(), eng.Store())
		if err != nil {
			fail("%v", err)
		}
		for _, name := range added {
			fmt.Printf("added %s\n", name)
		}
		fmt.Printf("%d grammar(s) added\n", len(added))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(seedCmd)
}
