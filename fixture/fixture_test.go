package fixture_test

import (
	"reflect"
	"testing"

	"github.com/jacentio/studiodesk/fixture"
	"github.com/jacentio/studiodesk/internal/ident"
	"github.com/jacentio/studiodesk/store"
)

func seeded(t *testing.T, policy store.ReferralPolicy) (*store.Store, fixture.IDs) {
	t.Helper()
	cfg := store.DefaultConfig()
	cfg.IDs = ident.NewSequence(0)
	cfg.ReferralPolicy = policy
	s := store.New(cfg)
	return s, fixture.Load(s)
}

func TestLoad_Counts(t *testing.T) {
	s, _ := seeded(t, store.ReferralPermissive)

	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{"clients", len(s.Clients()), 3},
		{"bookings", len(s.Bookings()), 2},
		{"galleries", len(s.Galleries()), 1},
		{"packages", len(s.Packages()), 3},
		{"referral programs", len(s.ReferralPrograms()), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, tt.got)
			}
		})
	}
}

func TestLoad_ReferralEdgeSymmetric(t *testing.T) {
	for _, policy := range []store.ReferralPolicy{store.ReferralPermissive, store.ReferralSymmetric} {
		t.Run(policy.String(), func(t *testing.T) {
			s, ids := seeded(t, policy)

			sarah, _ := s.Client(ids["sarah"])
			emily, _ := s.Client(ids["emily"])
			if !reflect.DeepEqual(sarah.Referrals, []string{ids["emily"]}) {
				t.Errorf("expected sarah.referrals [%s], got %v", ids["emily"], sarah.Referrals)
			}
			if emily.ReferredBy != ids["sarah"] {
				t.Errorf("expected emily.referredBy %q, got %q", ids["sarah"], emily.ReferredBy)
			}
		})
	}
}

func TestLoad_References(t *testing.T) {
	s, ids := seeded(t, store.ReferralPermissive)

	wedding, ok := s.Booking(ids["wedding"])
	if !ok {
		t.Fatal("expected wedding booking")
	}
	if wedding.ClientID != ids["sarah"] || wedding.PackageID != ids["weddingPremium"] {
		t.Errorf("expected wedding linked to sarah and premium package, got %+v", wedding)
	}

	g, _ := s.Gallery(ids["portraitGallery"])
	if g.ClientID != ids["emily"] {
		t.Errorf("expected gallery for emily, got %q", g.ClientID)
	}
	if g.CreatedAt.Format("2006-01-02") != "2024-03-21" {
		t.Errorf("expected createdAt 2024-03-21, got %v", g.CreatedAt)
	}
	if len(g.Images) != 2 || g.Images[0].ID != "1" || g.Images[1].ID != "2" {
		t.Errorf("expected seed image ids kept, got %+v", g.Images)
	}
}

func TestLoad_Settings(t *testing.T) {
	s, _ := seeded(t, store.ReferralPermissive)

	if s.UserProfile().BusinessName != "John Doe Photography" {
		t.Errorf("expected business name, got %q", s.UserProfile().BusinessName)
	}
	b := s.BusinessSettings()
	if b.Timezone != "America/Los_Angeles" {
		t.Errorf("expected LA timezone, got %q", b.Timezone)
	}
	if len(b.WorkingHours.Days) != 6 {
		t.Errorf("expected 6 working days, got %d", len(b.WorkingHours.Days))
	}
	if s.SystemSettings().WatermarkSettings.Text != "John Doe Photography" {
		t.Errorf("expected watermark text, got %q", s.SystemSettings().WatermarkSettings.Text)
	}
	if s.NotificationSettings().EmailNotifications.GalleryViewed {
		t.Error("expected galleryViewed off")
	}
}
