package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/studiodesk/store"
	"github.com/jacentio/studiodesk/views"
)

type statsResponse struct {
	Clients   views.ClientStats  `json:"clients"`
	Bookings  views.BookingStats `json:"bookings"`
	Galleries views.GalleryStats `json:"galleries"`
	Packages  views.PackageStats `json:"packages"`
}

type searchResponse struct {
	Clients   []store.Client  `json:"clients"`
	Bookings  []store.Booking `json:"bookings"`
	Galleries []store.Gallery `json:"galleries"`
}

func (s *Server) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, views.BuildDashboard(s.store.Snapshot(), s.now()))
}

func (s *Server) stats(c *gin.Context) {
	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, statsResponse{
		Clients:   views.ClientStatsOf(snap.Clients),
		Bookings:  views.BookingStatsOf(snap.Bookings, s.now()),
		Galleries: views.GalleryStatsOf(snap.Galleries),
		Packages:  views.PackageStatsOf(snap.Packages),
	})
}

// rewardPolicy resolves the configured policy against the current programs.
func (s *Server) rewardPolicy(programs []store.ReferralProgram) views.RewardPolicy {
	fixed := views.FixedReward{Unit: s.rewards.Unit}
	if !s.rewards.FromProgram {
		return fixed
	}
	p, ok := views.ActiveProgram(programs)
	if !ok {
		return fixed
	}
	return views.ProgramReward{Program: p, Fallback: fixed}
}

func (s *Server) referrals(c *gin.Context) {
	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, views.SummarizeReferrals(snap.Clients, s.rewardPolicy(snap.ReferralPrograms)))
}

func (s *Server) referralParticipants(c *gin.Context) {
	c.JSON(http.StatusOK, views.SearchReferralParticipants(s.store.Clients(), c.Query("q")))
}

func (s *Server) search(c *gin.Context) {
	snap := s.store.Snapshot()
	term := c.Query("q")
	c.JSON(http.StatusOK, searchResponse{
		Clients:   views.SearchClients(snap.Clients, term),
		Bookings:  views.SearchBookings(snap.Bookings, snap.Clients, term),
		Galleries: views.SearchGalleries(snap.Galleries, snap.Clients, term),
	})
}

func (s *Server) dueReminders(c *gin.Context) {
	due := s.store.DueReminders(s.now())
	if due == nil {
		due = []store.DueReminder{}
	}
	c.JSON(http.StatusOK, due)
}
