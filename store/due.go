package store

import "time"

// DueReminder is an unsent reminder whose scheduled time has passed.
type DueReminder struct {
	BookingID string   `json:"bookingId"`
	ClientID  string   `json:"clientId"`
	Reminder  Reminder `json:"reminder"`
}

// IsDue reports whether r should be delivered at now.
func IsDue(r Reminder, now time.Time) bool {
	return !r.Sent && !r.ScheduledDate.After(now)
}

// DueReminders returns the reminders ready to send at now, in booking then
// reminder order. Reminders on cancelled bookings are never due.
func (s *Store) DueReminders(now time.Time) []DueReminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []DueReminder
	for _, b := range s.bookings.items {
		if b.Status == BookingCancelled {
			continue
		}
		for _, r := range b.Reminders {
			if IsDue(r, now) {
				due = append(due, DueReminder{BookingID: b.ID, ClientID: b.ClientID, Reminder: r})
			}
		}
	}
	return due
}

// MarkReminderSent flags one reminder as sent. It returns false when the
// booking or reminder does not exist.
func (s *Store) MarkReminderSent(bookingID, reminderID string) bool {
	s.mu.Lock()
	i, ok := s.bookings.index(bookingID)
	if !ok {
		s.mu.Unlock()
		s.miss(EntityBooking, ActionUpdate, bookingID)
		return false
	}
	b := &s.bookings.items[i]
	found := false
	for j := range b.Reminders {
		if b.Reminders[j].ID == reminderID {
			b.Reminders[j].Sent = true
			found = true
			break
		}
	}
	var changes []Change
	if found {
		changes = append(changes, s.change(EntityBooking, ActionUpdate, bookingID))
	}
	s.mu.Unlock()

	s.hub.publish(changes)
	return found
}

// EnsureReminder attaches r to a booking that has no reminders yet and
// returns the new reminder id. The second result is false, changing nothing,
// when the booking is absent or already carries reminders.
func (s *Store) EnsureReminder(bookingID string, r Reminder) (string, bool) {
	s.mu.Lock()
	i, ok := s.bookings.index(bookingID)
	if !ok {
		s.mu.Unlock()
		s.miss(EntityBooking, ActionUpdate, bookingID)
		return "", false
	}
	b := &s.bookings.items[i]
	if len(b.Reminders) > 0 {
		s.mu.Unlock()
		return "", false
	}
	b.Reminders = []Reminder{r}
	s.assignReminderIDs(b.Reminders)
	id := b.Reminders[0].ID
	changes := []Change{s.change(EntityBooking, ActionUpdate, bookingID)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return id, true
}
