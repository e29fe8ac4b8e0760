package views

import (
	"strings"

	"github.com/jacentio/studiodesk/store"
)

// contains reports a case-insensitive substring match. An empty term matches.
func contains(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// clientName resolves id to a client name, empty when the id dangles.
func clientName(byID map[string]store.Client, id string) string {
	return byID[id].Name
}

// SearchBookings keeps bookings whose title or resolved client name contains
// term, case-insensitively, in insertion order.
func SearchBookings(bookings []store.Booking, clients []store.Client, term string) []store.Booking {
	byID := indexClients(clients)
	out := make([]store.Booking, 0, len(bookings))
	for _, b := range bookings {
		if contains(b.Title, term) || matchesClient(byID, b.ClientID, term) {
			out = append(out, b)
		}
	}
	return out
}

// SearchGalleries keeps galleries whose title or resolved client name contains
// term, case-insensitively, in insertion order.
func SearchGalleries(galleries []store.Gallery, clients []store.Client, term string) []store.Gallery {
	byID := indexClients(clients)
	out := make([]store.Gallery, 0, len(galleries))
	for _, g := range galleries {
		if contains(g.Title, term) || matchesClient(byID, g.ClientID, term) {
			out = append(out, g)
		}
	}
	return out
}

// matchesClient is false for a dangling id, even with an empty term.
func matchesClient(byID map[string]store.Client, id, term string) bool {
	if _, ok := byID[id]; !ok {
		return false
	}
	return contains(clientName(byID, id), term)
}

// SearchClients keeps clients whose name or email contains term.
func SearchClients(clients []store.Client, term string) []store.Client {
	out := make([]store.Client, 0, len(clients))
	for _, c := range clients {
		if contains(c.Name, term) || contains(c.Email, term) {
			out = append(out, c)
		}
	}
	return out
}

// SearchReferralParticipants keeps clients whose name contains term and who
// either referred someone or were referred.
func SearchReferralParticipants(clients []store.Client, term string) []store.Client {
	out := make([]store.Client, 0, len(clients))
	for _, c := range clients {
		if !contains(c.Name, term) {
			continue
		}
		if len(c.Referrals) > 0 || c.ReferredBy != "" {
			out = append(out, c)
		}
	}
	return out
}
