package store

// Deep-copy helpers. Every value leaving or entering the store goes through
// one of these so callers can never alias internal slices. Nil slices come
// back empty so records always encode lists as [].

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneReminders(in []Reminder) []Reminder {
	out := make([]Reminder, len(in))
	copy(out, in)
	return out
}

func cloneImages(in []GalleryImage) []GalleryImage {
	out := make([]GalleryImage, len(in))
	copy(out, in)
	return out
}

func cloneWorkingHours(w WorkingHours) WorkingHours {
	w.Days = cloneStrings(w.Days)
	return w
}

func cloneClient(c Client) Client {
	c.Referrals = cloneStrings(c.Referrals)
	return c
}

func cloneBooking(b Booking) Booking {
	b.Reminders = cloneReminders(b.Reminders)
	return b
}

func cloneGallery(g Gallery) Gallery {
	g.Images = cloneImages(g.Images)
	return g
}

func clonePackage(p Package) Package {
	p.Features = cloneStrings(p.Features)
	return p
}

func cloneProgram(r ReferralProgram) ReferralProgram { return r }

func cloneBusiness(b BusinessSettings) BusinessSettings {
	b.WorkingHours = cloneWorkingHours(b.WorkingHours)
	return b
}
