package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/studiodesk/media"
	"github.com/jacentio/studiodesk/store"
	"github.com/jacentio/studiodesk/views"
)

// Rewards selects the referral reward policy of the referral views.
type Rewards struct {
	// Unit is paid per listed referral. Zero means views.DefaultRewardUnit.
	Unit float64

	// FromProgram prices rewards from the first active referral program,
	// falling back to Unit when none is active.
	FromProgram bool
}

// Options configures a Server.
type Options struct {
	Store *store.Store

	// Media handles image uploads. Nil disables them.
	Media *media.Gallery

	Rewards Rewards

	// PublicURL is the base of gallery share links. Empty derives it from
	// the request host.
	PublicURL string

	Now    func() time.Time
	Logger *slog.Logger

	// Release switches gin to release mode.
	Release bool
}

// Server is the HTTP presentation layer over a store.
type Server struct {
	store     *store.Store
	media     *media.Gallery
	rewards   Rewards
	publicURL string
	now       func() time.Time
	logger    *slog.Logger

	engine      *gin.Engine
	hub         *Hub
	unsubscribe func()
}

// New builds the router and starts forwarding store changes to websocket
// clients. Call Close to stop forwarding.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Media == nil {
		opts.Media = media.NewGallery(opts.Store, nil, "", opts.Logger)
	}
	if opts.Rewards.Unit <= 0 {
		opts.Rewards.Unit = views.DefaultRewardUnit
	}
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		store:     opts.Store,
		media:     opts.Media,
		rewards:   opts.Rewards,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
		now:       opts.Now,
		logger:    opts.Logger,
		hub:       NewHub(),
	}
	s.unsubscribe = s.store.Subscribe(func(c store.Change) {
		s.hub.Broadcast(changeEvent{Type: "change", Change: c})
	})

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	s.routes(r)
	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Close stops forwarding changes and disconnects websocket clients.
func (s *Server) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.hub.CloseAll()
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g := r.Group("/api")

	registerResource(g.Group("/clients"), resource[store.Client, store.ClientPatch]{
		entity: store.EntityClient,
		list:   s.store.Clients,
		search: func(term string) []store.Client {
			return views.SearchClients(s.store.Clients(), term)
		},
		get:    s.store.Client,
		add:    s.store.AddClient,
		update: s.store.UpdateClient,
		remove: s.store.DeleteClient,
	})
	g.GET("/clients/:id/dependents", s.clientDependents)

	registerResource(g.Group("/bookings"), resource[store.Booking, store.BookingPatch]{
		entity: store.EntityBooking,
		list:   s.store.Bookings,
		search: func(term string) []store.Booking {
			snap := s.store.Snapshot()
			return views.SearchBookings(snap.Bookings, snap.Clients, term)
		},
		get:    s.store.Booking,
		add:    s.store.AddBooking,
		update: s.store.UpdateBooking,
		remove: s.store.DeleteBooking,
	})

	galleries := g.Group("/galleries")
	registerResource(galleries, resource[store.Gallery, store.GalleryPatch]{
		entity: store.EntityGallery,
		list:   s.store.Galleries,
		search: func(term string) []store.Gallery {
			snap := s.store.Snapshot()
			return views.SearchGalleries(snap.Galleries, snap.Clients, term)
		},
		get:    s.store.Gallery,
		add:    s.store.AddGallery,
		update: s.store.UpdateGallery,
		remove: s.store.DeleteGallery,
	})
	galleries.GET("/:id/qr.png", s.galleryQR)
	galleries.POST("/:id/images", s.uploadImage)

	registerResource(g.Group("/packages"), resource[store.Package, store.PackagePatch]{
		entity: store.EntityPackage,
		list:   s.store.Packages,
		get:    s.store.Package,
		add:    s.store.AddPackage,
		update: s.store.UpdatePackage,
		remove: s.store.DeletePackage,
	})
	registerResource(g.Group("/referral-programs"), resource[store.ReferralProgram, store.ReferralProgramPatch]{
		entity: store.EntityReferralProgram,
		list:   s.store.ReferralPrograms,
		get:    s.store.ReferralProgram,
		add:    s.store.AddReferralProgram,
		update: s.store.UpdateReferralProgram,
		remove: s.store.DeleteReferralProgram,
	})

	settings := g.Group("/settings")
	registerSetting(settings, "/profile", s.store.UserProfile, s.store.UpdateUserProfile)
	registerSetting(settings, "/business", s.store.BusinessSettings, s.store.UpdateBusinessSettings)
	registerSetting(settings, "/notifications", s.store.NotificationSettings, s.store.UpdateNotificationSettings)
	registerSetting(settings, "/system", s.store.SystemSettings, s.store.UpdateSystemSettings)

	g.GET("/dashboard", s.dashboard)
	g.GET("/stats", s.stats)
	g.GET("/referrals", s.referrals)
	g.GET("/referrals/participants", s.referralParticipants)
	g.GET("/search", s.search)
	g.GET("/reminders/due", s.dueReminders)

	g.GET("/ws", s.hub.Upgrade(s.logger))
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// respondError writes the error envelope used by every handler.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
