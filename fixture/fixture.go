// Package fixture seeds a Store with the illustrative studio dataset.
package fixture

import (
	"time"

	"github.com/jacentio/studiodesk/store"
)

// IDs holds the ids the seed records were stored under, keyed by a short
// name ("sarah", "emily", "wedding", ...).
type IDs map[string]string

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Load adds the seed dataset to s through the Mutation API and replaces the
// four settings singletons. Referral edges are patched after all clients
// exist, so the result is the same under either referral policy.
func Load(s *store.Store) IDs {
	ids := IDs{}

	ids["weddingPremium"] = s.AddPackage(store.Package{
		Name:        "Wedding Premium",
		Description: "Complete wedding photography package",
		Price:       2500,
		Duration:    8,
		Features:    []string{"8 hours coverage", "500+ edited photos", "Online gallery", "USB drive"},
		IsActive:    true,
	})
	ids["portraitSession"] = s.AddPackage(store.Package{
		Name:        "Portrait Session",
		Description: "Professional portrait photography",
		Price:       450,
		Duration:    2,
		Features:    []string{"2 hours session", "50+ edited photos", "Online gallery", "5 prints"},
		IsActive:    true,
	})
	ids["eventCoverage"] = s.AddPackage(store.Package{
		Name:        "Event Coverage",
		Description: "Corporate and private events",
		Price:       800,
		Duration:    4,
		Features:    []string{"4 hours coverage", "200+ edited photos", "Online gallery"},
		IsActive:    true,
	})

	ids["sarah"] = s.AddClient(store.Client{
		Name:       "Sarah & James Wilson",
		Email:      "sarah.wilson@email.com",
		Phone:      "+1 (555) 123-4567",
		Avatar:     "https://images.unsplash.com/photo-1494790108755-2616b612b5e5?w=150&h=150&fit=crop",
		Status:     store.ClientActive,
		TotalSpent: 2500,
		CreatedAt:  day("2024-01-15"),
	})
	ids["emily"] = s.AddClient(store.Client{
		Name:       "Emily Chen",
		Email:      "emily.chen@email.com",
		Phone:      "+1 (555) 987-6543",
		Avatar:     "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop",
		Status:     store.ClientActive,
		TotalSpent: 1800,
		CreatedAt:  day("2024-02-10"),
	})
	ids["michael"] = s.AddClient(store.Client{
		Name:       "Michael Rodriguez",
		Email:      "michael.r@email.com",
		Phone:      "+1 (555) 456-7890",
		Status:     store.ClientActive,
		TotalSpent: 3200,
		CreatedAt:  day("2024-01-20"),
	})
	s.UpdateClient(ids["emily"], store.ClientPatch{ReferredBy: store.Ptr(ids["sarah"])})
	s.UpdateClient(ids["sarah"], store.ClientPatch{Referrals: &[]string{ids["emily"]}})

	ids["wedding"] = s.AddBooking(store.Booking{
		ClientID:  ids["sarah"],
		Type:      store.BookingWedding,
		Title:     "Sarah & James Wedding",
		Date:      day("2024-06-15"),
		Duration:  8,
		Location:  "Grand Oak Venue, Downtown",
		Status:    store.BookingConfirmed,
		PackageID: ids["weddingPremium"],
		Price:     2500,
		Deposit:   500,
		Notes:     "Outdoor ceremony, indoor reception",
	})
	ids["portrait"] = s.AddBooking(store.Booking{
		ClientID:  ids["emily"],
		Type:      store.BookingPortrait,
		Title:     "Emily Portrait Session",
		Date:      day("2024-03-20"),
		Duration:  2,
		Location:  "Studio A",
		Status:    store.BookingCompleted,
		PackageID: ids["portraitSession"],
		Price:     450,
		Deposit:   150,
	})

	ids["portraitGallery"] = s.AddGallery(store.Gallery{
		ClientID:    ids["emily"],
		Title:       "Emily Portrait Session",
		Description: "Professional headshots and lifestyle portraits",
		CoverImage:  "https://images.unsplash.com/photo-1494790108755-2616b612b5e5?w=400&h=300&fit=crop",
		Images: []store.GalleryImage{
			{
				ID:            "1",
				URL:           "https://images.unsplash.com/photo-1494790108755-2616b612b5e5?w=800&h=1200&fit=crop",
				Thumbnail:     "https://images.unsplash.com/photo-1494790108755-2616b612b5e5?w=300&h=200&fit=crop",
				Title:         "Portrait 1",
				Selected:      true,
				DownloadCount: 3,
			},
			{
				ID:            "2",
				URL:           "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=800&h=1200&fit=crop",
				Thumbnail:     "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=300&h=200&fit=crop",
				Title:         "Portrait 2",
				DownloadCount: 1,
			},
		},
		Password:        "emily2024",
		DownloadEnabled: true,
		CreatedAt:       day("2024-03-21"),
	})

	ids["friendReferral"] = s.AddReferralProgram(store.ReferralProgram{
		Name:        "Friend Referral",
		RewardType:  store.RewardPercentage,
		RewardValue: 10,
		IsActive:    true,
	})

	loadSettings(s)
	return ids
}

func loadSettings(s *store.Store) {
	s.UpdateUserProfile(store.UserProfilePatch{
		Name:         store.Ptr("John Doe"),
		Email:        store.Ptr("john@photography.com"),
		Avatar:       store.Ptr("https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop"),
		BusinessName: store.Ptr("John Doe Photography"),
		Phone:        store.Ptr("+1 (555) 123-4567"),
		Website:      store.Ptr("www.johndoephotography.com"),
		Bio:          store.Ptr("Professional photographer specializing in weddings and portraits"),
		Location:     store.Ptr("Los Angeles, CA"),
	})

	s.UpdateBusinessSettings(store.BusinessSettingsPatch{
		BusinessName:  store.Ptr("John Doe Photography"),
		Address:       store.Ptr("123 Photography St, Los Angeles, CA 90210"),
		Phone:         store.Ptr("+1 (555) 123-4567"),
		Email:         store.Ptr("john@photography.com"),
		Website:       store.Ptr("www.johndoephotography.com"),
		Currency:      store.Ptr("USD"),
		Timezone:      store.Ptr("America/Los_Angeles"),
		DateFormat:    store.Ptr("MM/DD/YYYY"),
		Language:      store.Ptr("en"),
		TaxRate:       store.Ptr(8.25),
		InvoicePrefix: store.Ptr("INV-"),
		WorkingHours: &store.WorkingHours{
			Start: "09:00",
			End:   "18:00",
			Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		},
	})

	n := store.DefaultNotificationSettings()
	s.UpdateNotificationSettings(store.NotificationSettingsPatch{
		EmailNotifications: &n.EmailNotifications,
		SMSNotifications:   &n.SMSNotifications,
		PushNotifications:  &n.PushNotifications,
		ReminderSettings:   &n.ReminderSettings,
	})

	s.UpdateSystemSettings(store.SystemSettingsPatch{
		Theme:           store.Ptr("light"),
		AutoBackup:      store.Ptr(true),
		BackupFrequency: store.Ptr(store.BackupDaily),
		DataRetention:   store.Ptr(12),
		TwoFactorAuth:   store.Ptr(false),
		SessionTimeout:  store.Ptr(60),
		DefaultGallerySettings: &store.DefaultGallerySettings{
			DownloadEnabled:   true,
			PasswordProtected: true,
		},
		WatermarkSettings: &store.WatermarkSettings{
			Text:     "John Doe Photography",
			Position: "bottom-right",
			Opacity:  50,
		},
	})
}
