package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
	"github.com/goliatone/go-seller-dashboard/pkg/analytics"
	"github.com/goliatone/go-seller-dashboard/pkg/config"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	cfg := &config.Config{
		API: config.APIConfig{Mock: true},
		Dashboard: config.DashboardConfig{
			FetchTimeout:  time.Second,
			MaxSessions:   4,
			ChartTheme:    "westeros",
			ChartCacheTTL: time.Minute,
		},
	}
	a, err := newApp(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestSnapshotJSON(t *testing.T) {
	a := newTestApp(t)
	seller := analytics.DemoData().Sellers[3]
	cmd := &snapshotCmd{Page: dashboard.PageSeller, Seller: seller.ID, Format: "json", Wait: 5 * time.Second}

	var buf bytes.Buffer
	require.NoError(t, cmd.render(context.Background(), a, &buf))

	var doc snapshotDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.True(t, doc.Complete)
	require.NotNil(t, doc.Seller)
	assert.Equal(t, seller.ID, doc.Seller.ID)
	require.Len(t, doc.Widgets, 4)
	for _, w := range doc.Widgets {
		assert.Equal(t, "ready", w.Status, w.Code)
	}
	assert.Zero(t, a.service.SessionCount())
}

func TestSnapshotHTMLWithFragments(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	cmd := &snapshotCmd{Page: dashboard.PageMarketplace, Format: "html", Fragments: dir, Wait: 5 * time.Second}

	var buf bytes.Buffer
	require.NoError(t, cmd.render(context.Background(), a, &buf))
	assert.Contains(t, buf.String(), "Marketplace Overview")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	for _, e := range entries {
		assert.True(t, strings.HasSuffix(e.Name(), ".html"))
		assert.Equal(t, strings.ToLower(e.Name()), e.Name())
	}
}

func TestSnapshotUnknownSeller(t *testing.T) {
	a := newTestApp(t)
	cmd := &snapshotCmd{Page: dashboard.PageSeller, Seller: "nobody", Format: "json", Wait: time.Second}
	err := cmd.render(context.Background(), a, &bytes.Buffer{})
	assert.ErrorIs(t, err, dashboard.ErrSellerNotFound)
}

func TestSellersTable(t *testing.T) {
	var buf bytes.Buffer
	cmd := &sellersCmd{Timeout: time.Second}
	require.NoError(t, cmd.list(context.Background(), analytics.NewMockClient(analytics.DemoData()), &buf))
	assert.Contains(t, buf.String(), "TechGear Pro")
	assert.Contains(t, buf.String(), "RATING")
}

func TestLayoutDumpAndValidate(t *testing.T) {
	var dumped bytes.Buffer
	require.NoError(t, (&layoutDumpCmd{}).dump(&dumped))

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, dumped.Bytes(), 0o600))

	var out bytes.Buffer
	require.NoError(t, (&layoutValidateCmd{Path: path}).validate(&out))
	assert.Contains(t, out.String(), "2 pages, 8 widgets")
}

func TestLayoutValidateRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	manifest := "pages:\n  - code: seller\n    title: Seller\n    widgets:\n      - code: seller.widget.top_products\n        configuration:\n          limit: 500\n"
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	err := (&layoutValidateCmd{Path: path}).validate(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestLayoutWidgets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&layoutWidgetsCmd{}).list(&buf))
	assert.Contains(t, buf.String(), dashboard.WidgetMarketShare)

	buf.Reset()
	require.NoError(t, (&layoutWidgetsCmd{Schema: dashboard.WidgetSellerTopProducts}).list(&buf))
	assert.Contains(t, buf.String(), `"limit"`)

	assert.Error(t, (&layoutWidgetsCmd{Schema: "nope"}).list(&buf))
}
