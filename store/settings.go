package store

// UserProfile is the studio owner's profile.
type UserProfile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar,omitempty"`
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone"`
	Website      string `json:"website,omitempty"`
	Bio          string `json:"bio,omitempty"`
	Location     string `json:"location"`
}

// WorkingHours is replaced as a whole on update.
type WorkingHours struct {
	Start string   `json:"start"` // "09:00"
	End   string   `json:"end"`
	Days  []string `json:"days"`
}

// BusinessSettings holds studio-wide business configuration.
type BusinessSettings struct {
	BusinessName  string       `json:"businessName"`
	Address       string       `json:"address"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email"`
	Website       string       `json:"website"`
	Logo          string       `json:"logo,omitempty"`
	Currency      string       `json:"currency"`
	Timezone      string       `json:"timezone"`
	DateFormat    string       `json:"dateFormat"`
	Language      string       `json:"language"`
	TaxRate       float64      `json:"taxRate"`
	InvoicePrefix string       `json:"invoicePrefix"`
	WorkingHours  WorkingHours `json:"workingHours"`
}

// EmailNotifications toggles email notifications per event.
type EmailNotifications struct {
	NewBooking       bool `json:"newBooking"`
	BookingReminder  bool `json:"bookingReminder"`
	PaymentReceived  bool `json:"paymentReceived"`
	GalleryViewed    bool `json:"galleryViewed"`
	ClientRegistered bool `json:"clientRegistered"`
}

// SMSNotifications toggles SMS notifications per event.
type SMSNotifications struct {
	BookingReminder bool `json:"bookingReminder"`
	PaymentDue      bool `json:"paymentDue"`
}

// PushNotifications toggles push notifications per event.
type PushNotifications struct {
	Enabled bool `json:"enabled"`
	Booking bool `json:"booking"`
	Payment bool `json:"payment"`
	Gallery bool `json:"gallery"`
}

// ReminderFrequency is how often automatic reminders repeat.
type ReminderFrequency string

const (
	ReminderOnce   ReminderFrequency = "once"
	ReminderDaily  ReminderFrequency = "daily"
	ReminderWeekly ReminderFrequency = "weekly"
)

// ReminderSettings configures automatic booking reminders.
type ReminderSettings struct {
	DefaultReminderTime int               `json:"defaultReminderTime"` // hours before the booking
	AutoReminders       bool              `json:"autoReminders"`
	ReminderFrequency   ReminderFrequency `json:"reminderFrequency"`
}

// NotificationSettings groups every notification toggle. Each nested group
// is replaced as a whole on update.
type NotificationSettings struct {
	EmailNotifications EmailNotifications `json:"emailNotifications"`
	SMSNotifications   SMSNotifications   `json:"smsNotifications"`
	PushNotifications  PushNotifications  `json:"pushNotifications"`
	ReminderSettings   ReminderSettings   `json:"reminderSettings"`
}

// BackupFrequency is how often automatic backups run.
type BackupFrequency string

const (
	BackupDaily   BackupFrequency = "daily"
	BackupWeekly  BackupFrequency = "weekly"
	BackupMonthly BackupFrequency = "monthly"
)

// DefaultGallerySettings are applied by callers when creating galleries.
type DefaultGallerySettings struct {
	IsPublic          bool `json:"isPublic"`
	DownloadEnabled   bool `json:"downloadEnabled"`
	PasswordProtected bool `json:"passwordProtected"`
}

// WatermarkSettings is replaced as a whole on update.
type WatermarkSettings struct {
	Enabled  bool    `json:"enabled"`
	Text     string  `json:"text"`
	Position string  `json:"position"` // top-left|top-right|bottom-left|bottom-right|center
	Opacity  float64 `json:"opacity"`
}

// SystemSettings holds application-level preferences.
type SystemSettings struct {
	Theme                  string                 `json:"theme"` // light|dark|system
	AutoBackup             bool                   `json:"autoBackup"`
	BackupFrequency        BackupFrequency        `json:"backupFrequency"`
	DataRetention          int                    `json:"dataRetention"`  // months
	TwoFactorAuth          bool                   `json:"twoFactorAuth"`
	SessionTimeout         int                    `json:"sessionTimeout"` // minutes
	DefaultGallerySettings DefaultGallerySettings `json:"defaultGallerySettings"`
	WatermarkSettings      WatermarkSettings      `json:"watermarkSettings"`
}

// DefaultUserProfile returns the profile a fresh store starts with.
func DefaultUserProfile() UserProfile {
	return UserProfile{ID: "1"}
}

// DefaultBusinessSettings returns the business settings a fresh store starts with.
func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		Currency:      "USD",
		Timezone:      "UTC",
		DateFormat:    "MM/DD/YYYY",
		Language:      "en",
		InvoicePrefix: "INV-",
		WorkingHours: WorkingHours{
			Start: "09:00",
			End:   "18:00",
			Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		},
	}
}

// DefaultNotificationSettings returns the notification settings a fresh store starts with.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailNotifications: EmailNotifications{
			NewBooking:       true,
			BookingReminder:  true,
			PaymentReceived:  true,
			ClientRegistered: true,
		},
		SMSNotifications: SMSNotifications{
			BookingReminder: true,
			PaymentDue:      true,
		},
		PushNotifications: PushNotifications{
			Enabled: true,
			Booking: true,
			Payment: true,
		},
		ReminderSettings: ReminderSettings{
			DefaultReminderTime: 24,
			AutoReminders:       true,
			ReminderFrequency:   ReminderDaily,
		},
	}
}

// DefaultSystemSettings returns the system settings a fresh store starts with.
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		Theme:           "light",
		AutoBackup:      true,
		BackupFrequency: BackupDaily,
		DataRetention:   12,
		SessionTimeout:  60,
		DefaultGallerySettings: DefaultGallerySettings{
			DownloadEnabled:   true,
			PasswordProtected: true,
		},
		WatermarkSettings: WatermarkSettings{
			Position: "bottom-right",
			Opacity:  50,
		},
	}
}
