package main

import (
	"context"

	"github.com/alecthomas/kong"
)

type cli struct {
	EnvFile []string `name:"env-file" type:"path" help:"Dotenv files to load before reading SELLERDASH_* variables."`
	Mock    bool     `help:"Serve built-in demo data instead of calling the analytics API."`

	Serve    serveCmd    `cmd:"" default:"1" help:"Run the dashboard HTTP server."`
	Snapshot snapshotCmd `cmd:"" help:"Render one page to HTML or JSON without a server."`
	Sellers  sellersCmd  `cmd:"" help:"List the sellers known to the analytics API."`
	Layout   layoutCmd   `cmd:"" help:"Inspect and validate page layouts."`
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Name("sellerdash"),
		kong.Description("Seller and marketplace analytics dashboard."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run(&root)
	ctx.FatalIfErrorf(err)
}
