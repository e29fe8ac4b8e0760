package store

import "time"

// Patches describe shallow-merge updates. A nil field leaves the stored value
// untouched; a non-nil field replaces it. Slice fields and nested settings
// objects are replaced whole, never merged element by element.

// ClientPatch is a partial update of a Client.
type ClientPatch struct {
	Name       *string       `json:"name,omitempty"`
	Email      *string       `json:"email,omitempty"`
	Phone      *string       `json:"phone,omitempty"`
	Avatar     *string       `json:"avatar,omitempty"`
	Status     *ClientStatus `json:"status,omitempty"`
	TotalSpent *float64      `json:"totalSpent,omitempty"`
	ReferredBy *string       `json:"referredBy,omitempty"` // "" clears the referrer
	Referrals  *[]string     `json:"referrals,omitempty"`
}

func (p ClientPatch) apply(c *Client) {
	setIf(&c.Name, p.Name)
	setIf(&c.Email, p.Email)
	setIf(&c.Phone, p.Phone)
	setIf(&c.Avatar, p.Avatar)
	setIf(&c.Status, p.Status)
	setIf(&c.TotalSpent, p.TotalSpent)
	setIf(&c.ReferredBy, p.ReferredBy)
	if p.Referrals != nil {
		c.Referrals = cloneStrings(*p.Referrals)
	}
}

// BookingPatch is a partial update of a Booking.
type BookingPatch struct {
	ClientID  *string        `json:"clientId,omitempty"`
	Type      *BookingType   `json:"type,omitempty"`
	Title     *string        `json:"title,omitempty"`
	Date      *time.Time     `json:"date,omitempty"`
	Duration  *float64       `json:"duration,omitempty"`
	Location  *string        `json:"location,omitempty"`
	Status    *BookingStatus `json:"status,omitempty"`
	PackageID *string        `json:"packageId,omitempty"`
	Price     *float64       `json:"price,omitempty"`
	Deposit   *float64       `json:"deposit,omitempty"`
	Notes     *string        `json:"notes,omitempty"`
	Reminders *[]Reminder    `json:"reminders,omitempty"`
}

func (p BookingPatch) apply(b *Booking) {
	setIf(&b.ClientID, p.ClientID)
	setIf(&b.Type, p.Type)
	setIf(&b.Title, p.Title)
	setIf(&b.Date, p.Date)
	setIf(&b.Duration, p.Duration)
	setIf(&b.Location, p.Location)
	setIf(&b.Status, p.Status)
	setIf(&b.PackageID, p.PackageID)
	setIf(&b.Price, p.Price)
	setIf(&b.Deposit, p.Deposit)
	setIf(&b.Notes, p.Notes)
	if p.Reminders != nil {
		b.Reminders = cloneReminders(*p.Reminders)
	}
}

// GalleryPatch is a partial update of a Gallery.
type GalleryPatch struct {
	ClientID        *string         `json:"clientId,omitempty"`
	Title           *string         `json:"title,omitempty"`
	Description     *string         `json:"description,omitempty"`
	CoverImage      *string         `json:"coverImage,omitempty"`
	Images          *[]GalleryImage `json:"images,omitempty"`
	IsPublic        *bool           `json:"isPublic,omitempty"`
	Password        *string         `json:"password,omitempty"`
	DownloadEnabled *bool           `json:"downloadEnabled,omitempty"`
}

func (p GalleryPatch) apply(g *Gallery) {
	setIf(&g.ClientID, p.ClientID)
	setIf(&g.Title, p.Title)
	setIf(&g.Description, p.Description)
	setIf(&g.CoverImage, p.CoverImage)
	setIf(&g.IsPublic, p.IsPublic)
	setIf(&g.Password, p.Password)
	setIf(&g.DownloadEnabled, p.DownloadEnabled)
	if p.Images != nil {
		g.Images = cloneImages(*p.Images)
	}
}

// PackagePatch is a partial update of a Package.
type PackagePatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Duration    *float64  `json:"duration,omitempty"`
	Features    *[]string `json:"features,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
}

func (p PackagePatch) apply(pkg *Package) {
	setIf(&pkg.Name, p.Name)
	setIf(&pkg.Description, p.Description)
	setIf(&pkg.Price, p.Price)
	setIf(&pkg.Duration, p.Duration)
	setIf(&pkg.IsActive, p.IsActive)
	if p.Features != nil {
		pkg.Features = cloneStrings(*p.Features)
	}
}

// ReferralProgramPatch is a partial update of a ReferralProgram.
type ReferralProgramPatch struct {
	Name        *string     `json:"name,omitempty"`
	RewardType  *RewardType `json:"rewardType,omitempty"`
	RewardValue *float64    `json:"rewardValue,omitempty"`
	IsActive    *bool       `json:"isActive,omitempty"`
}

func (p ReferralProgramPatch) apply(r *ReferralProgram) {
	setIf(&r.Name, p.Name)
	setIf(&r.RewardType, p.RewardType)
	setIf(&r.RewardValue, p.RewardValue)
	setIf(&r.IsActive, p.IsActive)
}

// UserProfilePatch is a partial update of the UserProfile singleton.
type UserProfilePatch struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Avatar       *string `json:"avatar,omitempty"`
	BusinessName *string `json:"businessName,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Website      *string `json:"website,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	Location     *string `json:"location,omitempty"`
}

func (p UserProfilePatch) apply(u *UserProfile) {
	setIf(&u.Name, p.Name)
	setIf(&u.Email, p.Email)
	setIf(&u.Avatar, p.Avatar)
	setIf(&u.BusinessName, p.BusinessName)
	setIf(&u.Phone, p.Phone)
	setIf(&u.Website, p.Website)
	setIf(&u.Bio, p.Bio)
	setIf(&u.Location, p.Location)
}

// BusinessSettingsPatch is a partial update of the BusinessSettings singleton.
// WorkingHours is atomic: supply the complete value.
type BusinessSettingsPatch struct {
	BusinessName  *string       `json:"businessName,omitempty"`
	Address       *string       `json:"address,omitempty"`
	Phone         *string       `json:"phone,omitempty"`
	Email         *string       `json:"email,omitempty"`
	Website       *string       `json:"website,omitempty"`
	Logo          *string       `json:"logo,omitempty"`
	Currency      *string       `json:"currency,omitempty"`
	Timezone      *string       `json:"timezone,omitempty"`
	DateFormat    *string       `json:"dateFormat,omitempty"`
	Language      *string       `json:"language,omitempty"`
	TaxRate       *float64      `json:"taxRate,omitempty"`
	InvoicePrefix *string       `json:"invoicePrefix,omitempty"`
	WorkingHours  *WorkingHours `json:"workingHours,omitempty"`
}

func (p BusinessSettingsPatch) apply(b *BusinessSettings) {
	setIf(&b.BusinessName, p.BusinessName)
	setIf(&b.Address, p.Address)
	setIf(&b.Phone, p.Phone)
	setIf(&b.Email, p.Email)
	setIf(&b.Website, p.Website)
	setIf(&b.Logo, p.Logo)
	setIf(&b.Currency, p.Currency)
	setIf(&b.Timezone, p.Timezone)
	setIf(&b.DateFormat, p.DateFormat)
	setIf(&b.Language, p.Language)
	setIf(&b.TaxRate, p.TaxRate)
	setIf(&b.InvoicePrefix, p.InvoicePrefix)
	if p.WorkingHours != nil {
		b.WorkingHours = cloneWorkingHours(*p.WorkingHours)
	}
}

// NotificationSettingsPatch is a partial update of the NotificationSettings
// singleton. Each group is atomic.
type NotificationSettingsPatch struct {
	EmailNotifications *EmailNotifications `json:"emailNotifications,omitempty"`
	SMSNotifications   *SMSNotifications   `json:"smsNotifications,omitempty"`
	PushNotifications  *PushNotifications  `json:"pushNotifications,omitempty"`
	ReminderSettings   *ReminderSettings   `json:"reminderSettings,omitempty"`
}

func (p NotificationSettingsPatch) apply(n *NotificationSettings) {
	setIf(&n.EmailNotifications, p.EmailNotifications)
	setIf(&n.SMSNotifications, p.SMSNotifications)
	setIf(&n.PushNotifications, p.PushNotifications)
	setIf(&n.ReminderSettings, p.ReminderSettings)
}

// SystemSettingsPatch is a partial update of the SystemSettings singleton.
// DefaultGallerySettings and WatermarkSettings are atomic.
type SystemSettingsPatch struct {
	Theme                  *string                 `json:"theme,omitempty"`
	AutoBackup             *bool                   `json:"autoBackup,omitempty"`
	BackupFrequency        *BackupFrequency        `json:"backupFrequency,omitempty"`
	DataRetention          *int                    `json:"dataRetention,omitempty"`
	TwoFactorAuth          *bool                   `json:"twoFactorAuth,omitempty"`
	SessionTimeout         *int                    `json:"sessionTimeout,omitempty"`
	DefaultGallerySettings *DefaultGallerySettings `json:"defaultGallerySettings,omitempty"`
	WatermarkSettings      *WatermarkSettings      `json:"watermarkSettings,omitempty"`
}

func (p SystemSettingsPatch) apply(s *SystemSettings) {
	setIf(&s.Theme, p.Theme)
	setIf(&s.AutoBackup, p.AutoBackup)
	setIf(&s.BackupFrequency, p.BackupFrequency)
	setIf(&s.DataRetention, p.DataRetention)
	setIf(&s.TwoFactorAuth, p.TwoFactorAuth)
	setIf(&s.SessionTimeout, p.SessionTimeout)
	setIf(&s.DefaultGallerySettings, p.DefaultGallerySettings)
	setIf(&s.WatermarkSettings, p.WatermarkSettings)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
