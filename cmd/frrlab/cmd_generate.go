package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frrlab/frrlab/pkg/cli"
	"github.com/frrlab/frrlab/pkg/dockernet"
	"github.com/frrlab/frrlab/pkg/emit"
	"github.com/frrlab/frrlab/pkg/fabric"
	"github.com/frrlab/frrlab/pkg/lab"
)

func newGenerateCmd() *cobra.Command {
	var (
		labDir   string
		writeEnv bool
		force    bool
	)
	opts := lab.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a lab directory (FRR configs, compose manifest)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fab, err := lab.Generate(opts, dockernet.NewSource())
			if err != nil {
				return err
			}
			if opts.Subnet == "" {
				fmt.Printf("%s Selected free subnet: %s\n", cli.Yellow("[auto]"), fab.Subnet)
			}

			w := &emit.Writer{Dir: labDir, Force: force}
			if err := w.WriteAll(fab, writeEnv); err != nil {
				return err
			}

			fmt.Printf("\n%s Lab created: %s (%d nodes)\n\n", cli.Green("✓"), labDir, len(fab.Nodes()))
			tbl := cli.NewTable(os.Stdout, "NODE", "ADDRESS", "AS", "ROUTER-ID")
			for _, n := range fab.Nodes() {
				tbl.Row(n.Name, n.Addr.String(), fmt.Sprintf("%d", n.ASN), fabric.RouterID(n.Addr))
			}
			tbl.Flush()
			if writeEnv {
				fmt.Println("\nGenerated .env (use with docker-compose.base.yml)")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&labDir, "lab", "", "lab directory (e.g. labs/lab1)")
	cmd.Flags().StringVar(&opts.Subnet, "subnet", "", "fabric subnet CIDR (default: auto-pick a free /24)")
	cmd.Flags().IntVar(&opts.Spines, "spines", opts.Spines, "number of spine routers")
	cmd.Flags().IntVar(&opts.Leafs, "leafs", opts.Leafs, "number of leaf routers")
	cmd.Flags().IntVar(&opts.SpineAS, "spine-as", opts.SpineAS, "AS number shared by all spines")
	cmd.Flags().IntVar(&opts.LeafASStart, "leaf-as-start", opts.LeafASStart, "AS number of leaf1; later leafs increment")
	cmd.Flags().IntVar(&opts.IPOffset, "ip-offset", opts.IPOffset, "1-based host index of the first assigned address")
	cmd.Flags().BoolVar(&writeEnv, "write-env", false, "write .env bindings for docker compose")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing lab directory")
	_ = cmd.MarkFlagRequired("lab")
	return cmd
}
