package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

type snapshotCmd struct {
	Page      string        `default:"seller" help:"Page code to render."`
	Seller    string        `help:"Seller id to select before rendering (seller pages only)."`
	Format    string        `enum:"html,json" default:"html" help:"Output format (html or json)."`
	Out       string        `short:"o" type:"path" help:"Write to this file instead of stdout."`
	Fragments string        `type:"path" help:"Also write each widget's HTML fragment into this directory."`
	Wait      time.Duration `default:"15s" help:"How long to wait for every widget to load."`
}

type snapshotWidget struct {
	Code   string               `json:"code"`
	Name   string               `json:"name"`
	Status string               `json:"status"`
	Error  string               `json:"error,omitempty"`
	View   *dashboard.ViewModel `json:"view,omitempty"`
}

type snapshotDoc struct {
	Page     string            `json:"page"`
	Title    string            `json:"title"`
	Seller   *dashboard.Seller `json:"seller,omitempty"`
	Complete bool              `json:"complete"`
	Widgets  []snapshotWidget  `json:"widgets"`
}

func (cmd *snapshotCmd) Run(ctx context.Context, root *cli) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, newLogger(cfg, os.Stderr))
	if err != nil {
		return err
	}
	defer a.Close()

	out := io.Writer(os.Stdout)
	if cmd.Out != "" {
		f, err := os.Create(cmd.Out)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return cmd.render(ctx, a, out)
}

func (cmd *snapshotCmd) render(ctx context.Context, a *app, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, cmd.Wait)
	defer cancel()

	sess := a.service.NewSession()
	defer a.service.CloseSession(sess.ID())
	if err := sess.WaitReady(ctx); err != nil {
		return fmt.Errorf("sellers did not load: %w", err)
	}
	if cmd.Seller != "" {
		if err := sess.ChangeSeller(ctx, cmd.Seller); err != nil {
			return fmt.Errorf("select seller %s: %w", cmd.Seller, err)
		}
	}
	board, err := sess.Open(cmd.Page)
	if err != nil {
		return fmt.Errorf("open page %s: %w", cmd.Page, err)
	}
	complete := board.Wait(ctx) == nil
	view := board.View()
	if !complete {
		a.log.Warn().Str("page", cmd.Page).Msg("snapshot taken before every widget loaded")
	}

	if cmd.Fragments != "" {
		if err := cmd.writeFragments(a, view); err != nil {
			return err
		}
	}
	if cmd.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(toSnapshotDoc(view, complete))
	}
	html, err := a.controller.RenderPage(view)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, html)
	return err
}

func (cmd *snapshotCmd) writeFragments(a *app, view dashboard.PageView) error {
	if err := os.MkdirAll(cmd.Fragments, 0o755); err != nil {
		return err
	}
	for _, w := range view.Widgets {
		html, err := a.widgets.Render(w)
		if err != nil {
			return err
		}
		path := filepath.Join(cmd.Fragments, w.DOMID()+".html")
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func toSnapshotDoc(view dashboard.PageView, complete bool) snapshotDoc {
	doc := snapshotDoc{
		Page:     view.Page.Code,
		Title:    view.Page.Title,
		Complete: complete,
		Widgets:  make([]snapshotWidget, len(view.Widgets)),
	}
	if view.SellerScoped {
		seller := view.Selection.Selected
		doc.Seller = &seller
	}
	for i, w := range view.Widgets {
		doc.Widgets[i] = snapshotWidget{
			Code:   w.Code,
			Name:   w.Name,
			Status: string(w.State.Status),
			Error:  w.State.ErrorMessage(),
			View:   w.State.ViewModel,
		}
	}
	return doc
}
