package commands

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

func TestSelectSellerCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewSelectSellerCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), SelectSellerInput{SessionID: "s1", SellerID: " seller-2 "}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.selected != "seller-2" || service.session != "s1" {
		t.Fatalf("expected trimmed seller id on session s1, got %q on %q", service.selected, service.session)
	}
	if telemetry.calls != 1 || telemetry.last != EventSelectSeller {
		t.Fatalf("expected %s event, got %d calls (last %q)", EventSelectSeller, telemetry.calls, telemetry.last)
	}
	if telemetry.payload["seller_id"] != "seller-2" {
		t.Fatalf("expected seller_id in payload, got %v", telemetry.payload)
	}
}

func TestSelectSellerCommandRequiresSellerID(t *testing.T) {
	service := &stubService{}
	cmd := NewSelectSellerCommand(service, nil)
	if err := cmd.Execute(context.Background(), SelectSellerInput{SessionID: "s1"}); err == nil {
		t.Fatalf("expected error for empty seller id")
	}
	if service.calls != 0 {
		t.Fatalf("service should not be called")
	}
}

func TestSelectSellerCommandPropagatesNotFound(t *testing.T) {
	service := &stubService{err: dashboard.ErrSellerNotFound}
	telemetry := &stubTelemetry{}
	cmd := NewSelectSellerCommand(service, telemetry)
	err := cmd.Execute(context.Background(), SelectSellerInput{SessionID: "s1", SellerID: "ghost"})
	if !errors.Is(err, dashboard.ErrSellerNotFound) {
		t.Fatalf("expected ErrSellerNotFound, got %v", err)
	}
	if telemetry.calls != 0 {
		t.Fatalf("expected no telemetry on failure")
	}
}

func TestRefreshPageCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewRefreshPageCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), RefreshPageInput{SessionID: "s1", Page: "seller"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.refreshed != "seller" {
		t.Fatalf("expected refresh of seller page, got %q", service.refreshed)
	}
	if telemetry.last != EventRefreshPage || telemetry.payload["page"] != "seller" {
		t.Fatalf("expected %s event for seller page, got %q %v", EventRefreshPage, telemetry.last, telemetry.payload)
	}
	if err := cmd.Execute(context.Background(), RefreshPageInput{SessionID: "s1"}); err == nil {
		t.Fatalf("expected error for missing page")
	}
}

func TestCommandsRequireService(t *testing.T) {
	if err := NewSelectSellerCommand(nil, nil).Execute(context.Background(), SelectSellerInput{SellerID: "x"}); err == nil {
		t.Fatalf("expected error without service")
	}
	if err := NewRefreshPageCommand(nil, nil).Execute(context.Background(), RefreshPageInput{Page: "x"}); err == nil {
		t.Fatalf("expected error without service")
	}
}

type stubService struct {
	calls     int
	session   string
	selected  string
	refreshed string
	err       error
}

func (s *stubService) ChangeSeller(_ context.Context, sessionID, sellerID string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.session = sessionID
	s.selected = sellerID
	return nil
}

func (s *stubService) RefreshPage(sessionID, page string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.session = sessionID
	s.refreshed = page
	return nil
}

type stubTelemetry struct {
	calls   int
	last    string
	payload map[string]any
}

func (s *stubTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	s.calls++
	s.last = event
	s.payload = payload
}
