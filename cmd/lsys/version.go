package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/lindenmayer"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lsys",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lsys version %s\n", strings.TrimSpace(lindenmayer.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
