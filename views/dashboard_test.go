package views_test

import (
	"testing"
	"time"

	"github.com/jacentio/studiodesk/fixture"
	"github.com/jacentio/studiodesk/internal/ident"
	"github.com/jacentio/studiodesk/store"
	"github.com/jacentio/studiodesk/views"
)

func TestBuildDashboard_Seed(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.IDs = ident.NewSequence(0)
	s := store.New(cfg)
	ids := fixture.Load(s)

	// Between the portrait session and the wedding.
	at := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	d := views.BuildDashboard(s.Snapshot(), at)

	if d.TotalRevenue != 2950 {
		t.Errorf("expected revenue 2950, got %v", d.TotalRevenue)
	}
	if d.ActiveClients != 3 || d.TotalClients != 3 {
		t.Errorf("expected 3 active of 3, got %d of %d", d.ActiveClients, d.TotalClients)
	}
	if len(d.UpcomingBookings) != 1 || d.UpcomingBookings[0].ID != ids["wedding"] {
		t.Fatalf("expected only the wedding upcoming, got %+v", d.UpcomingBookings)
	}
	if c := d.UpcomingBookings[0].Client; c == nil || c.Name != "Sarah & James Wilson" {
		t.Errorf("expected resolved client Sarah, got %+v", c)
	}
	if len(d.RecentGalleries) != 1 || d.RecentGalleries[0].Client == nil {
		t.Errorf("expected one recent gallery with client, got %+v", d.RecentGalleries)
	}
}

func TestBuildDashboard_DanglingClient(t *testing.T) {
	snap := store.Snapshot{
		Bookings:  []store.Booking{{ID: "b", ClientID: "gone", Date: now.Add(time.Hour)}},
		Galleries: []store.Gallery{{ID: "g", ClientID: "gone"}},
	}
	d := views.BuildDashboard(snap, now)
	if len(d.UpcomingBookings) != 1 || d.UpcomingBookings[0].Client != nil {
		t.Errorf("expected booking with nil client, got %+v", d.UpcomingBookings)
	}
	if d.RecentGalleries[0].Client != nil {
		t.Error("expected gallery with nil client")
	}
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := views.BuildDashboard(store.Snapshot{}, now)
	if d.TotalRevenue != 0 || len(d.UpcomingBookings) != 0 || len(d.RecentGalleries) != 0 {
		t.Errorf("expected empty dashboard, got %+v", d)
	}
}
