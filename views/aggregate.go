package views

import (
	"math"
	"slices"
	"time"

	"github.com/jacentio/studiodesk/store"
)

// Revenue is the sum of every booking price.
func Revenue(bookings []store.Booking) float64 {
	var total float64
	for _, b := range bookings {
		total += b.Price
	}
	return total
}

// AverageBookingValue is Revenue divided by the booking count, rounded to the
// nearest integer. It is 0 when there are no bookings.
func AverageBookingValue(bookings []store.Booking) int {
	if len(bookings) == 0 {
		return 0
	}
	return int(math.Round(Revenue(bookings) / float64(len(bookings))))
}

// UpcomingBookings returns bookings dated strictly after now, earliest first.
// Equal dates keep insertion order. limit <= 0 returns all of them.
func UpcomingBookings(bookings []store.Booking, now time.Time, limit int) []store.Booking {
	out := make([]store.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Date.After(now) {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b store.Booking) int {
		return a.Date.Compare(b.Date)
	})
	return truncate(out, limit)
}

// UpcomingCount counts bookings dated strictly after now.
func UpcomingCount(bookings []store.Booking, now time.Time) int {
	n := 0
	for _, b := range bookings {
		if b.Date.After(now) {
			n++
		}
	}
	return n
}

// RecentGalleries returns galleries newest first. Equal timestamps keep
// insertion order. limit <= 0 returns all of them.
func RecentGalleries(galleries []store.Gallery, limit int) []store.Gallery {
	out := slices.Clone(galleries)
	slices.SortStableFunc(out, func(a, b store.Gallery) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return truncate(out, limit)
}

// ActiveClients counts clients with status active.
func ActiveClients(clients []store.Client) int {
	n := 0
	for _, c := range clients {
		if c.Status == store.ClientActive {
			n++
		}
	}
	return n
}

// TotalSpent sums the standalone totalSpent field of every client.
func TotalSpent(clients []store.Client) float64 {
	var total float64
	for _, c := range clients {
		total += c.TotalSpent
	}
	return total
}

// TotalImages counts images across all galleries.
func TotalImages(galleries []store.Gallery) int {
	n := 0
	for _, g := range galleries {
		n += len(g.Images)
	}
	return n
}

// TotalDownloads sums downloadCount over every image of every gallery.
func TotalDownloads(galleries []store.Gallery) int {
	n := 0
	for _, g := range galleries {
		for _, img := range g.Images {
			n += img.DownloadCount
		}
	}
	return n
}

// PublicGalleries counts galleries marked public.
func PublicGalleries(galleries []store.Gallery) int {
	n := 0
	for _, g := range galleries {
		if g.IsPublic {
			n++
		}
	}
	return n
}

// ActivePackages counts packages that are on offer.
func ActivePackages(packages []store.Package) int {
	n := 0
	for _, p := range packages {
		if p.IsActive {
			n++
		}
	}
	return n
}

// AveragePackagePrice is the mean package price, 0 when there are none.
func AveragePackagePrice(packages []store.Package) float64 {
	if len(packages) == 0 {
		return 0
	}
	var total float64
	for _, p := range packages {
		total += p.Price
	}
	return total / float64(len(packages))
}

func truncate[T any](in []T, limit int) []T {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}

// ClientStats summarizes the client list.
type ClientStats struct {
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	TotalSpent     float64 `json:"totalSpent"`
	TotalReferrals int     `json:"totalReferrals"`
}

// ClientStatsOf computes ClientStats.
func ClientStatsOf(clients []store.Client) ClientStats {
	return ClientStats{
		Total:          len(clients),
		Active:         ActiveClients(clients),
		TotalSpent:     TotalSpent(clients),
		TotalReferrals: TotalReferrals(clients),
	}
}

// BookingStats summarizes the booking list at a point in time.
type BookingStats struct {
	Total        int     `json:"total"`
	Upcoming     int     `json:"upcoming"`
	Revenue      float64 `json:"revenue"`
	AverageValue int     `json:"averageValue"`
}

// BookingStatsOf computes BookingStats relative to now.
func BookingStatsOf(bookings []store.Booking, now time.Time) BookingStats {
	return BookingStats{
		Total:        len(bookings),
		Upcoming:     UpcomingCount(bookings, now),
		Revenue:      Revenue(bookings),
		AverageValue: AverageBookingValue(bookings),
	}
}

// GalleryStats summarizes the gallery list.
type GalleryStats struct {
	Total     int `json:"total"`
	Public    int `json:"public"`
	Images    int `json:"images"`
	Downloads int `json:"downloads"`
}

// GalleryStatsOf computes GalleryStats.
func GalleryStatsOf(galleries []store.Gallery) GalleryStats {
	return GalleryStats{
		Total:     len(galleries),
		Public:    PublicGalleries(galleries),
		Images:    TotalImages(galleries),
		Downloads: TotalDownloads(galleries),
	}
}

// PackageStats summarizes the package list.
type PackageStats struct {
	Total        int     `json:"total"`
	Active       int     `json:"active"`
	AveragePrice float64 `json:"averagePrice"`
}

// PackageStatsOf computes PackageStats.
func PackageStatsOf(packages []store.Package) PackageStats {
	return PackageStats{
		Total:        len(packages),
		Active:       ActivePackages(packages),
		AveragePrice: AveragePackagePrice(packages),
	}
}
