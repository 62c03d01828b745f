package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

type layoutCmd struct {
	Validate layoutValidateCmd `cmd:"" help:"Validate a layout manifest against the widget registry."`
	Dump     layoutDumpCmd     `cmd:"" help:"Print a layout manifest as YAML (the built-in one by default)."`
	Widgets  layoutWidgetsCmd  `cmd:"" help:"List the widgets a layout can place."`
}

type layoutValidateCmd struct {
	Path string `arg:"" type:"existingfile" help:"Layout manifest (YAML or JSON)."`
}

func (cmd *layoutValidateCmd) Run() error {
	return cmd.validate(os.Stdout)
}

func (cmd *layoutValidateCmd) validate(out io.Writer) error {
	layout, err := dashboard.ReadLayout(cmd.Path)
	if err != nil {
		return err
	}
	if err := layout.Validate(dashboard.NewRegistry(), dashboard.NewJSONSchemaValidator()); err != nil {
		return fmt.Errorf("%s: %w", cmd.Path, err)
	}
	widgets := 0
	for _, page := range layout.Pages {
		widgets += len(page.Widgets)
	}
	fmt.Fprintf(out, "✓ %s: %d pages, %d widgets\n", cmd.Path, len(layout.Pages), widgets)
	return nil
}

type layoutDumpCmd struct {
	Path string `type:"existingfile" help:"Normalize this manifest instead of the built-in layout."`
}

func (cmd *layoutDumpCmd) Run() error {
	return cmd.dump(os.Stdout)
}

func (cmd *layoutDumpCmd) dump(out io.Writer) error {
	layout := dashboard.DefaultLayout()
	if cmd.Path != "" {
		var err error
		if layout, err = dashboard.ReadLayout(cmd.Path); err != nil {
			return err
		}
	}
	return dashboard.EncodeLayout(out, layout)
}

type layoutWidgetsCmd struct {
	Schema string `help:"Print the configuration schema of this widget code as JSON."`
}

func (cmd *layoutWidgetsCmd) Run() error {
	return cmd.list(os.Stdout)
}

func (cmd *layoutWidgetsCmd) list(out io.Writer) error {
	registry := dashboard.NewRegistry()
	if cmd.Schema != "" {
		def, ok := registry.Definition(cmd.Schema)
		if !ok {
			return fmt.Errorf("unknown widget %s", cmd.Schema)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(def.Schema)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tSCOPE\tNAME")
	for _, def := range registry.Definitions() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", def.Code, def.Scope, def.Name)
	}
	return tw.Flush()
}
