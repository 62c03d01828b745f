package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/goliatone/go-seller-dashboard/pkg/analytics"
)

type sellersCmd struct {
	JSON    bool          `help:"Print JSON instead of a table."`
	Timeout time.Duration `default:"10s" help:"Request timeout."`
}

func (cmd *sellersCmd) Run(ctx context.Context, root *cli) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, newLogger(cfg, os.Stderr))
	if err != nil {
		return err
	}
	return cmd.list(ctx, client, os.Stdout)
}

func (cmd *sellersCmd) list(ctx context.Context, client analytics.SellerClient, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, cmd.Timeout)
	defer cancel()
	sellers, err := client.ListSellers(ctx)
	if err != nil {
		return err
	}
	if cmd.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sellers)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRATING")
	for _, s := range sellers {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\n", s.ID, s.Name, s.Rating)
	}
	return tw.Flush()
}
