// Command bubblegen computes geographic-targeting circle sets for electoral
// constituency boundaries and writes them, with coverage statistics, to CSV.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"constituency-bubbles/internal/version"
)

func main() {
	root := &cobra.Command{
		Use:           "bubblegen",
		Short:         "Generate targeting circles for constituency boundaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("bubblegen " + version.String())
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
