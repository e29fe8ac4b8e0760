package reminder

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jacentio/studiodesk/store"
)

// Planner attaches a default reminder to upcoming bookings that have none.
type Planner struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewPlanner creates a Planner.
func NewPlanner(s *store.Store, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{store: s, logger: logger, now: s.Config().Now}
}

// Plan adds one reminder, defaultReminderTime hours before the session, to
// every pending or confirmed booking dated after now without reminders. It
// does nothing when autoReminders is off and returns the number of bookings
// it touched. The reminder goes by SMS when the client has a phone number
// and by email otherwise. A booking that gained reminders since the read is
// left alone.
func (p *Planner) Plan() int {
	rs := p.store.NotificationSettings().ReminderSettings
	if !rs.AutoReminders {
		return 0
	}
	lead := time.Duration(rs.DefaultReminderTime) * time.Hour
	now := p.now()

	planned := 0
	for _, b := range p.store.Bookings() {
		if !needsReminder(b, now) {
			continue
		}
		r := store.Reminder{
			Type:          store.ReminderEmail,
			Message:       Message(b),
			ScheduledDate: b.Date.Add(-lead),
		}
		if c, ok := p.store.Client(b.ClientID); ok && c.Phone != "" {
			r.Type = store.ReminderSMS
		}
		if _, ok := p.store.EnsureReminder(b.ID, r); ok {
			planned++
		}
	}

	if planned > 0 {
		p.logger.Info("reminders planned", "count", planned)
	}
	return planned
}

func needsReminder(b store.Booking, now time.Time) bool {
	if b.Status != store.BookingPending && b.Status != store.BookingConfirmed {
		return false
	}
	return b.Date.After(now) && len(b.Reminders) == 0
}

// Message is the reminder text for a booking.
func Message(b store.Booking) string {
	msg := fmt.Sprintf("Reminder: %s on %s", b.Title, b.Date.Format("Mon Jan 2, 2006 15:04"))
	if b.Location != "" {
		msg += " at " + b.Location
	}
	return msg
}
