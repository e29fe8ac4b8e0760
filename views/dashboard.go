package views

import (
	"time"

	"github.com/jacentio/studiodesk/store"
)

// DashboardLimit is how many upcoming bookings and recent galleries the
// dashboard lists.
const DashboardLimit = 3

// BookingWithClient pairs a booking with its resolved client. Client is nil
// when clientId dangles.
type BookingWithClient struct {
	store.Booking
	Client *store.Client `json:"client,omitempty"`
}

// GalleryWithClient pairs a gallery with its resolved client.
type GalleryWithClient struct {
	store.Gallery
	Client *store.Client `json:"client,omitempty"`
}

// Dashboard is the overview page.
type Dashboard struct {
	UpcomingBookings []BookingWithClient `json:"upcomingBookings"`
	RecentGalleries  []GalleryWithClient `json:"recentGalleries"`
	TotalRevenue     float64             `json:"totalRevenue"`
	ActiveClients    int                 `json:"activeClients"`
	TotalClients     int                 `json:"totalClients"`
	TotalBookings    int                 `json:"totalBookings"`
	TotalGalleries   int                 `json:"totalGalleries"`
}

// BuildDashboard computes the dashboard from a snapshot relative to now.
func BuildDashboard(snap store.Snapshot, now time.Time) Dashboard {
	byID := indexClients(snap.Clients)

	upcoming := UpcomingBookings(snap.Bookings, now, DashboardLimit)
	d := Dashboard{
		UpcomingBookings: make([]BookingWithClient, 0, len(upcoming)),
		TotalRevenue:     Revenue(snap.Bookings),
		ActiveClients:    ActiveClients(snap.Clients),
		TotalClients:     len(snap.Clients),
		TotalBookings:    len(snap.Bookings),
		TotalGalleries:   len(snap.Galleries),
	}
	for _, b := range upcoming {
		d.UpcomingBookings = append(d.UpcomingBookings, BookingWithClient{Booking: b, Client: lookup(byID, b.ClientID)})
	}

	recent := RecentGalleries(snap.Galleries, DashboardLimit)
	d.RecentGalleries = make([]GalleryWithClient, 0, len(recent))
	for _, g := range recent {
		d.RecentGalleries = append(d.RecentGalleries, GalleryWithClient{Gallery: g, Client: lookup(byID, g.ClientID)})
	}
	return d
}

func lookup(byID map[string]store.Client, id string) *store.Client {
	c, ok := byID[id]
	if !ok {
		return nil
	}
	return &c
}
