// frrlab generates reproducible FRR spine/leaf BGP labs
//
// frrlab picks a conflict-free fabric subnet (avoiding address space
// already claimed by running Docker networks), assigns every router an
// address and AS number, and writes the per-node FRR configuration plus
// the Docker Compose wiring to run the lab.
//
// Usage:
//
//	frrlab generate --lab labs/lab1 --spines 1 --leafs 2 --write-env
//	frrlab version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frrlab/frrlab/pkg/util"
	"github.com/frrlab/frrlab/pkg/version"
)

var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "frrlab",
	Short:             "Generate FRR spine/leaf BGP lab topologies",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `frrlab generates a spine/leaf BGP lab: FRR configuration per node,
a Docker Compose manifest, and the .env bindings to run it.

Without --subnet it auto-selects the first free /24 in 172.31.0.0/16
that no running Docker network overlaps.

  frrlab generate --lab labs/lab1`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version.Version == "dev" {
				fmt.Println("frrlab dev build (use 'make build' for version info)")
			} else {
				fmt.Printf("frrlab %s (%s)\n", version.Version, version.GitCommit)
			}
		},
	}
}
