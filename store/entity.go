package store

import "time"

// EntityType names a collection in the store.
type EntityType string

const (
	EntityClient          EntityType = "client"
	EntityBooking         EntityType = "booking"
	EntityGallery         EntityType = "gallery"
	EntityPackage         EntityType = "package"
	EntityReferralProgram EntityType = "referral_program"
	EntityUserProfile     EntityType = "user_profile"
	EntityBusiness        EntityType = "business_settings"
	EntityNotifications   EntityType = "notification_settings"
	EntitySystem          EntityType = "system_settings"
)

// ClientStatus is the lifecycle state of a client.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

// BookingType is the kind of photo session.
type BookingType string

const (
	BookingWedding    BookingType = "wedding"
	BookingPortrait   BookingType = "portrait"
	BookingEvent      BookingType = "event"
	BookingCommercial BookingType = "commercial"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ReminderType is the delivery channel of a reminder.
type ReminderType string

const (
	ReminderEmail ReminderType = "email"
	ReminderSMS   ReminderType = "sms"
)

// RewardType selects how a referral program's RewardValue is read.
type RewardType string

const (
	RewardPercentage RewardType = "percentage"
	RewardFixed      RewardType = "fixed"
)

// Client is a studio customer.
//
// TotalSpent is maintained independently of the client's bookings and may
// diverge from their prices.
type Client struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Avatar     string       `json:"avatar,omitempty"`
	Status     ClientStatus `json:"status"`
	TotalSpent float64      `json:"totalSpent"`

	// ReferredBy is the id of the referring client, empty when none.
	ReferredBy string `json:"referredBy,omitempty"`

	// Referrals lists the ids of clients this client referred.
	Referrals []string `json:"referrals"`

	CreatedAt time.Time `json:"createdAt"`
}

// Booking is a scheduled photo session. ClientID and PackageID are soft
// references and are never validated.
type Booking struct {
	ID        string        `json:"id"`
	ClientID  string        `json:"clientId"`
	Type      BookingType   `json:"type"`
	Title     string        `json:"title"`
	Date      time.Time     `json:"date"`
	Duration  float64       `json:"duration"` // hours
	Location  string        `json:"location"`
	Status    BookingStatus `json:"status"`
	PackageID string        `json:"packageId"`
	Price     float64       `json:"price"`
	Deposit   float64       `json:"deposit"`
	Notes     string        `json:"notes,omitempty"`
	Reminders []Reminder    `json:"reminders"`
}

// Reminder belongs to exactly one booking.
type Reminder struct {
	ID            string       `json:"id"`
	Type          ReminderType `json:"type"`
	Message       string       `json:"message"`
	ScheduledDate time.Time    `json:"scheduledDate"`
	Sent          bool         `json:"sent"`
}

// Gallery is a delivered set of images for a client.
type Gallery struct {
	ID              string         `json:"id"`
	ClientID        string         `json:"clientId"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	CoverImage      string         `json:"coverImage"`
	Images          []GalleryImage `json:"images"`
	IsPublic        bool           `json:"isPublic"`
	Password        string         `json:"password,omitempty"`
	DownloadEnabled bool           `json:"downloadEnabled"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// GalleryImage belongs to exactly one gallery.
type GalleryImage struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Thumbnail     string `json:"thumbnail"`
	Title         string `json:"title,omitempty"`
	Selected      bool   `json:"selected"`
	DownloadCount int    `json:"downloadCount"`
}

// Package is a priced service offering.
type Package struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Duration    float64  `json:"duration"` // hours
	Features    []string `json:"features"`
	IsActive    bool     `json:"isActive"`
}

// ReferralProgram describes a reward offered for referrals. It is not linked
// to individual referral edges.
type ReferralProgram struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	RewardType  RewardType `json:"rewardType"`
	RewardValue float64    `json:"rewardValue"`
	IsActive    bool       `json:"isActive"`
}
