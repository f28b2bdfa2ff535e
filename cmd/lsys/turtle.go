package main

import (
	"fmt"
	"os"

	"github.com/aretw0/lindenmayer/internal/cli"
	"github.com/aretw0/lindenmayer/pkg/turtle"
	"github.com/spf13/cobra"
)

var turtleCmd = &cobra.Command{
	Use:   "turtle <grammar>",
	Short: "Interpret an expansion as turtle graphics",
	Long: `Feeds the expansion into a turtle reader: F and G draw, f moves,
+ and - turn by --angle, [ and ] push and pop the cursor, | turns around.
Prints a summary and, with --svg, writes the drawing.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, _, _, closeStore := setup(cmd)
		defer closeStore()

		req, err := requestFlags(cmd)
		if err != nil {
			fail("%v", err)
		}
		angle, _ := cmd.Flags().GetFloat64("angle")
		step, _ := cmd.Flags().GetFloat64("step")
		svgPath, _ := cmd.Flags().GetString("svg")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		run, err := eng.Open(ctx, args[0], req)
		if err != nil {
			fail("%v", err)
		}
		defer run.Close()

		// Start at the origin heading up.
		cursor, _ := turtle.NewCursor(turtle.Vec2{}, turtle.Vec2{Y: 1})
		reader := turtle.NewReader(run, turtle.DefaultActions(step, angle), cursor)
		if err := reader.Run(); err != nil {
			fail("%v", err)
		}

		b := reader.Bounds()
		fmt.Printf("symbols:  %d (%d without action)\n", reader.Steps(), reader.Unknown())
		fmt.Printf("segments: %d\n", len(reader.Segments()))
		fmt.Printf("bounds:   (%.2f, %.2f) - (%.2f, %.2f)\n", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
		if seed, ok := run.Seed(); ok {
			fmt.Printf("seed:     %d\n", seed)
		}

		if svgPath == "" {
			return
		}
		f, err := os.Create(svgPath)
		if err != nil {
			fail("%v", err)
		}
		defer f.Close()
		if err := turtle.WriteSVG(f, reader.Segments(), b, step, step/5); err != nil {
			fail("%v", err)
		}
		fmt.Printf("wrote %s\n", svgPath)
	},
}

func init() {
	rootCmd.AddCommand(turtleCmd)
	addRequestFlags(turtleCmd)
	turtleCmd.Flags().Float64("angle", 25, "Turn angle in degrees")
	turtleCmd.Flags().Float64("step", 10, "Length of one forward step")
	turtleCmd.Flags().String("svg", "", "Write the drawing to this SVG file")
}
