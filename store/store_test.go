package store_test

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/jacentio/studiodesk/internal/ident"
	"github.com/jacentio/studiodesk/store"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testConfig() store.Config {
	cfg := store.DefaultConfig()
	cfg.IDs = ident.NewSequence(0)
	cfg.Now = func() time.Time { return fixedNow }
	return cfg
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(testConfig())
}

// --- Add ---

func TestAdd_GrowsByOneWithUniqueID(t *testing.T) {
	s := newStore(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		before := len(s.Clients())
		id := s.AddClient(store.Client{Name: "Client"})
		after := s.Clients()
		if len(after) != before+1 {
			t.Fatalf("expected %d clients, got %d", before+1, len(after))
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}

	bID := s.AddBooking(store.Booking{Title: "A"})
	gID := s.AddGallery(store.Gallery{Title: "G"})
	pID := s.AddPackage(store.Package{Name: "P"})
	rID := s.AddReferralProgram(store.ReferralProgram{Name: "R"})
	for _, id := range []string{bID, gID, pID, rID} {
		if seen[id] {
			t.Errorf("duplicate id %q across collections", id)
		}
		seen[id] = true
	}
	if len(s.Bookings()) != 1 || len(s.Galleries()) != 1 || len(s.Packages()) != 1 || len(s.ReferralPrograms()) != 1 {
		t.Error("expected one record in each collection")
	}
}

func TestAdd_IgnoresCallerID(t *testing.T) {
	s := newStore(t)
	id := s.AddClient(store.Client{ID: "mine", Name: "Ana"})
	if id == "mine" {
		t.Error("expected store-generated id, got caller id")
	}
	if _, ok := s.Client("mine"); ok {
		t.Error("expected caller id not to be stored")
	}
}

func TestAdd_StampsCreatedAt(t *testing.T) {
	s := newStore(t)

	cID := s.AddClient(store.Client{Name: "Ana"})
	c, _ := s.Client(cID)
	if !c.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected createdAt %v, got %v", fixedNow, c.CreatedAt)
	}

	seeded := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	gID := s.AddGallery(store.Gallery{Title: "Old", CreatedAt: seeded})
	g, _ := s.Gallery(gID)
	if !g.CreatedAt.Equal(seeded) {
		t.Errorf("expected explicit createdAt to be kept, got %v", g.CreatedAt)
	}
}

func TestAdd_AcceptsMalformedPayload(t *testing.T) {
	s := newStore(t)
	id := s.AddClient(store.Client{})
	c, ok := s.Client(id)
	if !ok {
		t.Fatal("expected empty client to be stored")
	}
	if c.Name != "" {
		t.Errorf("expected empty name, got %q", c.Name)
	}
	if c.Referrals == nil {
		t.Error("expected empty referrals list, got nil")
	}
}

func TestAdd_InsertionOrder(t *testing.T) {
	s := newStore(t)
	names := []string{"c", "a", "b"}
	for _, n := range names {
		s.AddPackage(store.Package{Name: n})
	}
	for i, p := range s.Packages() {
		if p.Name != names[i] {
			t.Errorf("position %d: expected %q, got %q", i, names[i], p.Name)
		}
	}
}

func TestAdd_AssignsNestedIDs(t *testing.T) {
	s := newStore(t)

	gID := s.AddGallery(store.Gallery{Images: []store.GalleryImage{
		{URL: "a.jpg"},
		{ID: "keep", URL: "b.jpg"},
		{ID: "keep", URL: "c.jpg"},
	}})
	g, _ := s.Gallery(gID)
	if g.Images[0].ID == "" {
		t.Error("expected generated image id")
	}
	if g.Images[1].ID != "keep" {
		t.Errorf("expected 'keep', got %q", g.Images[1].ID)
	}
	if g.Images[2].ID == "keep" || g.Images[2].ID == "" {
		t.Errorf("expected duplicate image id to be replaced, got %q", g.Images[2].ID)
	}

	bID := s.AddBooking(store.Booking{Reminders: []store.Reminder{{Message: "hi"}}})
	b, _ := s.Booking(bID)
	if b.Reminders[0].ID == "" {
		t.Error("expected generated reminder id")
	}
}

// --- Update ---

func TestUpdate_ChangesOnlyPatchedFields(t *testing.T) {
	s := newStore(t)
	id := s.AddClient(store.Client{
		Name:       "Sarah",
		Email:      "sarah@example.com",
		Phone:      "555",
		Status:     store.ClientActive,
		TotalSpent: 2500,
		Referrals:  []string{"x"},
	})
	before, _ := s.Client(id)

	if !s.UpdateClient(id, store.ClientPatch{Phone: store.Ptr("777")}) {
		t.Fatal("expected update to match")
	}

	after, _ := s.Client(id)
	want := before
	want.Phone = "777"
	if !reflect.DeepEqual(after, want) {
		t.Errorf("expected %+v, got %+v", want, after)
	}
}

func TestUpdate_ReplacesSlicesWhole(t *testing.T) {
	s := newStore(t)
	id := s.AddPackage(store.Package{Name: "P", Features: []string{"a", "b", "c"}})

	s.UpdatePackage(id, store.PackagePatch{Features: &[]string{"z"}})

	p, _ := s.Package(id)
	if !reflect.DeepEqual(p.Features, []string{"z"}) {
		t.Errorf("expected [z], got %v", p.Features)
	}
}

func TestUpdate_ReplacedImagesGetIDs(t *testing.T) {
	s := newStore(t)
	id := s.AddGallery(store.Gallery{Title: "G"})

	s.UpdateGallery(id, store.GalleryPatch{Images: &[]store.GalleryImage{{URL: "x.jpg"}}})

	g, _ := s.Gallery(id)
	if len(g.Images) != 1 || g.Images[0].ID == "" {
		t.Errorf("expected one image with id, got %+v", g.Images)
	}
}

func TestUpdate_MissingIDIsNoOp(t *testing.T) {
	s := newStore(t)
	s.AddClient(store.Client{Name: "Ana"})
	s.AddBooking(store.Booking{Title: "B"})
	s.AddGallery(store.Gallery{Title: "G"})
	s.AddPackage(store.Package{Name: "P"})
	s.AddReferralProgram(store.ReferralProgram{Name: "R"})
	before := s.Snapshot()

	tests := []struct {
		name string
		fn   func() bool
	}{
		{"client", func() bool { return s.UpdateClient("nope", store.ClientPatch{Name: store.Ptr("x")}) }},
		{"booking", func() bool { return s.UpdateBooking("nope", store.BookingPatch{Title: store.Ptr("x")}) }},
		{"gallery", func() bool { return s.UpdateGallery("nope", store.GalleryPatch{Title: store.Ptr("x")}) }},
		{"package", func() bool { return s.UpdatePackage("nope", store.PackagePatch{Name: store.Ptr("x")}) }},
		{"program", func() bool {
			return s.UpdateReferralProgram("nope", store.ReferralProgramPatch{Name: store.Ptr("x")})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fn() {
				t.Error("expected no match")
			}
		})
	}

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("expected store unchanged after missed updates")
	}
}

// --- Delete ---

func TestDelete_TwiceIsNoOp(t *testing.T) {
	s := newStore(t)
	a := s.AddBooking(store.Booking{Title: "A"})
	b := s.AddBooking(store.Booking{Title: "B"})

	if !s.DeleteBooking(a) {
		t.Fatal("expected first delete to match")
	}
	if s.DeleteBooking(a) {
		t.Error("expected second delete to be a no-op")
	}
	bookings := s.Bookings()
	if len(bookings) != 1 || bookings[0].ID != b {
		t.Errorf("expected only %q left, got %+v", b, bookings)
	}

	// Index stays consistent after removal.
	if _, ok := s.Booking(b); !ok {
		t.Error("expected remaining booking to be found by id")
	}
}

func TestDelete_EmptyCollection(t *testing.T) {
	s := newStore(t)
	if s.DeletePackage("x") || s.DeleteGallery("x") || s.DeleteReferralProgram("x") || s.DeleteClient("x") {
		t.Error("expected deletes on empty store to be no-ops")
	}
	if len(s.Packages()) != 0 {
		t.Errorf("expected 0 packages, got %d", len(s.Packages()))
	}
}

func TestDeleteClient_OrphansByDefault(t *testing.T) {
	s := newStore(t)
	cID := s.AddClient(store.Client{Name: "Ana"})
	bID := s.AddBooking(store.Booking{ClientID: cID})
	gID := s.AddGallery(store.Gallery{ClientID: cID})

	s.DeleteClient(cID)

	b, ok := s.Booking(bID)
	if !ok || b.ClientID != cID {
		t.Errorf("expected booking to keep dangling clientId %q", cID)
	}
	if _, ok := s.Gallery(gID); !ok {
		t.Error("expected gallery to survive client delete")
	}
}

func TestDeleteClient_Cascade(t *testing.T) {
	cfg := testConfig()
	cfg.DeletePolicy = store.DeleteCascade
	s := store.New(cfg)

	cID := s.AddClient(store.Client{Name: "Ana"})
	other := s.AddClient(store.Client{Name: "Ben"})
	s.AddBooking(store.Booking{ClientID: cID})
	keep := s.AddBooking(store.Booking{ClientID: other})
	s.AddGallery(store.Gallery{ClientID: cID})

	if deps := s.Dependents(cID); len(deps) != 2 {
		t.Fatalf("expected 2 dependents, got %d", len(deps))
	}

	s.DeleteClient(cID)

	bookings := s.Bookings()
	if len(bookings) != 1 || bookings[0].ID != keep {
		t.Errorf("expected only %q left, got %+v", keep, bookings)
	}
	if len(s.Galleries()) != 0 {
		t.Errorf("expected galleries removed, got %d", len(s.Galleries()))
	}
}

// --- Referral policy ---

func TestReferral_PermissiveLeavesAsymmetry(t *testing.T) {
	s := newStore(t)
	a := s.AddClient(store.Client{Name: "A"})
	s.AddClient(store.Client{Name: "B", ReferredBy: a})

	got, _ := s.Client(a)
	if len(got.Referrals) != 0 {
		t.Errorf("expected referrer untouched, got %v", got.Referrals)
	}
}

func TestReferral_Symmetric(t *testing.T) {
	cfg := testConfig()
	cfg.ReferralPolicy = store.ReferralSymmetric
	s := store.New(cfg)

	a := s.AddClient(store.Client{Name: "A"})
	c := s.AddClient(store.Client{Name: "C"})
	b := s.AddClient(store.Client{Name: "B", ReferredBy: a})

	ca, _ := s.Client(a)
	if !reflect.DeepEqual(ca.Referrals, []string{b}) {
		t.Fatalf("expected A.referrals [%s], got %v", b, ca.Referrals)
	}

	// Move the edge from A to C.
	s.UpdateClient(b, store.ClientPatch{ReferredBy: store.Ptr(c)})
	ca, _ = s.Client(a)
	cc, _ := s.Client(c)
	if len(ca.Referrals) != 0 {
		t.Errorf("expected A.referrals empty, got %v", ca.Referrals)
	}
	if !reflect.DeepEqual(cc.Referrals, []string{b}) {
		t.Errorf("expected C.referrals [%s], got %v", b, cc.Referrals)
	}

	// Deleting the referrer clears referredBy on the referred client.
	s.DeleteClient(c)
	cb, _ := s.Client(b)
	if cb.ReferredBy != "" {
		t.Errorf("expected referredBy cleared, got %q", cb.ReferredBy)
	}
}

func TestReferral_SymmetricDeleteReferred(t *testing.T) {
	cfg := testConfig()
	cfg.ReferralPolicy = store.ReferralSymmetric
	s := store.New(cfg)

	a := s.AddClient(store.Client{Name: "A"})
	b := s.AddClient(store.Client{Name: "B", ReferredBy: a})
	s.DeleteClient(b)

	ca, _ := s.Client(a)
	if len(ca.Referrals) != 0 {
		t.Errorf("expected referral removed from A, got %v", ca.Referrals)
	}
}

func TestReferral_Symmetric_ReferralsSide(t *testing.T) {
	cfg := testConfig()
	cfg.ReferralPolicy = store.ReferralSymmetric
	s := store.New(cfg)

	a := s.AddClient(store.Client{Name: "A"})
	b := s.AddClient(store.Client{Name: "B"})

	s.UpdateClient(a, store.ClientPatch{Referrals: &[]string{b}})
	if cb, _ := s.Client(b); cb.ReferredBy != a {
		t.Fatalf("expected B.referredBy %q, got %q", a, cb.ReferredBy)
	}

	// A new client listing B takes B over from A.
	c := s.AddClient(store.Client{Name: "C", Referrals: []string{b}})
	if cb, _ := s.Client(b); cb.ReferredBy != c {
		t.Errorf("expected B.referredBy %q, got %q", c, cb.ReferredBy)
	}
	if ca, _ := s.Client(a); len(ca.Referrals) != 0 {
		t.Errorf("expected A.referrals empty, got %v", ca.Referrals)
	}

	// Moving B back through referredBy leaves exactly one referrer listing it.
	s.UpdateClient(b, store.ClientPatch{ReferredBy: store.Ptr(a)})
	ca, _ := s.Client(a)
	cc, _ := s.Client(c)
	if !reflect.DeepEqual(ca.Referrals, []string{b}) {
		t.Errorf("expected A.referrals [%s], got %v", b, ca.Referrals)
	}
	if len(cc.Referrals) != 0 {
		t.Errorf("expected C.referrals empty, got %v", cc.Referrals)
	}

	// Dropping B from the list clears its referredBy.
	s.UpdateClient(a, store.ClientPatch{Referrals: &[]string{}})
	if cb, _ := s.Client(b); cb.ReferredBy != "" {
		t.Errorf("expected B.referredBy cleared, got %q", cb.ReferredBy)
	}
}

func TestReferral_Permissive_ReferralsSideUntouched(t *testing.T) {
	s := newStore(t)

	a := s.AddClient(store.Client{Name: "A"})
	b := s.AddClient(store.Client{Name: "B"})
	s.UpdateClient(a, store.ClientPatch{Referrals: &[]string{b}})

	if cb, _ := s.Client(b); cb.ReferredBy != "" {
		t.Errorf("expected B.referredBy untouched, got %q", cb.ReferredBy)
	}
}

// --- Settings ---

func TestSettings_Defaults(t *testing.T) {
	s := newStore(t)
	if s.SystemSettings().Theme != "light" {
		t.Errorf("expected theme 'light', got %q", s.SystemSettings().Theme)
	}
	if s.NotificationSettings().ReminderSettings.DefaultReminderTime != 24 {
		t.Errorf("expected 24h reminder, got %d", s.NotificationSettings().ReminderSettings.DefaultReminderTime)
	}
	if s.BusinessSettings().Currency != "USD" {
		t.Errorf("expected USD, got %q", s.BusinessSettings().Currency)
	}
}

func TestSettings_ShallowMerge(t *testing.T) {
	s := newStore(t)
	before := s.BusinessSettings()

	s.UpdateBusinessSettings(store.BusinessSettingsPatch{
		TaxRate:      store.Ptr(8.25),
		WorkingHours: &store.WorkingHours{Start: "10:00", End: "16:00"},
	})

	after := s.BusinessSettings()
	if after.TaxRate != 8.25 {
		t.Errorf("expected tax 8.25, got %v", after.TaxRate)
	}
	if after.Currency != before.Currency {
		t.Errorf("expected currency unchanged, got %q", after.Currency)
	}
	// Nested object is replaced whole: Days is not merged from before.
	if len(after.WorkingHours.Days) != 0 {
		t.Errorf("expected days replaced with empty list, got %v", after.WorkingHours.Days)
	}
}

func TestSettings_NestedGroupsAtomic(t *testing.T) {
	s := newStore(t)
	s.UpdateNotificationSettings(store.NotificationSettingsPatch{
		SMSNotifications: &store.SMSNotifications{PaymentDue: true},
	})
	n := s.NotificationSettings()
	if n.SMSNotifications.BookingReminder {
		t.Error("expected bookingReminder reset by whole-group replacement")
	}
	if !n.EmailNotifications.NewBooking {
		t.Error("expected untouched group unchanged")
	}

	s.UpdateSystemSettings(store.SystemSettingsPatch{
		WatermarkSettings: &store.WatermarkSettings{Enabled: true, Text: "JD", Position: "center", Opacity: 30},
	})
	if w := s.SystemSettings().WatermarkSettings; !w.Enabled || w.Text != "JD" {
		t.Errorf("expected watermark replaced, got %+v", w)
	}

	s.UpdateUserProfile(store.UserProfilePatch{Name: store.Ptr("John Doe")})
	if s.UserProfile().Name != "John Doe" {
		t.Errorf("expected 'John Doe', got %q", s.UserProfile().Name)
	}
}

// --- Isolation ---

func TestReads_ReturnCopies(t *testing.T) {
	s := newStore(t)
	id := s.AddClient(store.Client{Name: "Ana", Referrals: []string{"x"}})

	c, _ := s.Client(id)
	c.Referrals[0] = "mutated"
	c.Name = "mutated"

	list := s.Clients()
	list[0].Referrals[0] = "mutated"

	wh := s.BusinessSettings().WorkingHours
	wh.Days[0] = "mutated"

	again, _ := s.Client(id)
	if again.Name != "Ana" || again.Referrals[0] != "x" {
		t.Errorf("expected stored client unchanged, got %+v", again)
	}
	if s.BusinessSettings().WorkingHours.Days[0] == "mutated" {
		t.Error("expected stored working hours unchanged")
	}
}

func TestAdd_DoesNotAliasInput(t *testing.T) {
	s := newStore(t)
	features := []string{"a"}
	id := s.AddPackage(store.Package{Features: features})
	features[0] = "mutated"

	p, _ := s.Package(id)
	if p.Features[0] != "a" {
		t.Errorf("expected 'a', got %q", p.Features[0])
	}
}

func TestStores_AreIsolated(t *testing.T) {
	a := newStore(t)
	b := newStore(t)
	a.AddClient(store.Client{Name: "Ana"})
	if len(b.Clients()) != 0 {
		t.Errorf("expected second store empty, got %d clients", len(b.Clients()))
	}
}

// --- Subscriptions ---

func TestSubscribe_ReceivesChanges(t *testing.T) {
	s := newStore(t)

	var got []store.Change
	cancel := s.Subscribe(func(c store.Change) {
		// Reading inside the callback must not deadlock.
		_ = s.Clients()
		got = append(got, c)
	})

	id := s.AddClient(store.Client{Name: "Ana"})
	s.UpdateClient(id, store.ClientPatch{Name: store.Ptr("Ann")})
	s.UpdateClient("missing", store.ClientPatch{})
	s.UpdateSystemSettings(store.SystemSettingsPatch{Theme: store.Ptr("dark")})
	s.DeleteClient(id)

	expected := []store.Change{
		{Entity: store.EntityClient, Action: store.ActionCreate, ID: id, At: fixedNow},
		{Entity: store.EntityClient, Action: store.ActionUpdate, ID: id, At: fixedNow},
		{Entity: store.EntitySystem, Action: store.ActionUpdate, At: fixedNow},
		{Entity: store.EntityClient, Action: store.ActionDelete, ID: id, At: fixedNow},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %+v, got %+v", expected, got)
	}

	cancel()
	cancel()
	s.AddClient(store.Client{Name: "Ben"})
	if len(got) != len(expected) {
		t.Errorf("expected no delivery after cancel, got %d changes", len(got))
	}
}

func TestSnapshot_Consistent(t *testing.T) {
	s := newStore(t)
	s.AddClient(store.Client{Name: "Ana"})
	s.AddBooking(store.Booking{Title: "B"})

	snap := s.Snapshot()
	if len(snap.Clients) != 1 || len(snap.Bookings) != 1 {
		t.Errorf("expected 1 client and 1 booking, got %d and %d", len(snap.Clients), len(snap.Bookings))
	}
	if !snap.TakenAt.Equal(fixedNow) {
		t.Errorf("expected takenAt %v, got %v", fixedNow, snap.TakenAt)
	}
	if snap.SystemSettings != s.SystemSettings() {
		t.Error("expected snapshot settings to match")
	}
}

// --- Reminders ---

func TestDueReminders(t *testing.T) {
	s := newStore(t)
	past := fixedNow.Add(-time.Hour)
	future := fixedNow.Add(time.Hour)

	due := s.AddBooking(store.Booking{
		ClientID: "c1",
		Status:   store.BookingConfirmed,
		Reminders: []store.Reminder{
			{ID: "r1", ScheduledDate: past},
			{ID: "r2", ScheduledDate: future},
			{ID: "r3", ScheduledDate: past, Sent: true},
			{ID: "r4", ScheduledDate: fixedNow},
		},
	})
	s.AddBooking(store.Booking{
		Status:    store.BookingCancelled,
		Reminders: []store.Reminder{{ID: "r5", ScheduledDate: past}},
	})

	got := s.DueReminders(fixedNow)
	if len(got) != 2 {
		t.Fatalf("expected 2 due reminders, got %d", len(got))
	}
	if got[0].Reminder.ID != "r1" || got[1].Reminder.ID != "r4" {
		t.Errorf("expected r1 and r4, got %q and %q", got[0].Reminder.ID, got[1].Reminder.ID)
	}
	if got[0].BookingID != due || got[0].ClientID != "c1" {
		t.Errorf("expected booking %q client c1, got %+v", due, got[0])
	}

	if !s.MarkReminderSent(due, "r1") {
		t.Fatal("expected mark to match")
	}
	if s.MarkReminderSent(due, "missing") {
		t.Error("expected unknown reminder not to match")
	}
	if s.MarkReminderSent("missing", "r1") {
		t.Error("expected unknown booking not to match")
	}
	if len(s.DueReminders(fixedNow)) != 1 {
		t.Errorf("expected 1 due reminder after marking, got %d", len(s.DueReminders(fixedNow)))
	}
}

func TestAppendGalleryImage(t *testing.T) {
	s := newStore(t)
	gID := s.AddGallery(store.Gallery{Images: []store.GalleryImage{{URL: "a.jpg"}}})

	imgID, ok := s.AppendGalleryImage(gID, store.GalleryImage{URL: "b.jpg", Thumbnail: "b_t.jpg"})
	if !ok || imgID == "" {
		t.Fatalf("expected image appended, got %q %v", imgID, ok)
	}
	g, _ := s.Gallery(gID)
	if len(g.Images) != 2 || g.Images[1].ID != imgID {
		t.Errorf("expected new image last with id %q, got %+v", imgID, g.Images)
	}

	if _, ok := s.AppendGalleryImage("missing", store.GalleryImage{}); ok {
		t.Error("expected missing gallery not to match")
	}
}

func TestEnsureReminder(t *testing.T) {
	s := newStore(t)
	empty := s.AddBooking(store.Booking{Status: store.BookingConfirmed})
	taken := s.AddBooking(store.Booking{
		Status:    store.BookingConfirmed,
		Reminders: []store.Reminder{{ID: "r1", Message: "manual"}},
	})

	id, ok := s.EnsureReminder(empty, store.Reminder{Message: "auto"})
	if !ok || id == "" {
		t.Fatalf("expected reminder attached with id, got %q (%v)", id, ok)
	}
	b, _ := s.Booking(empty)
	if len(b.Reminders) != 1 || b.Reminders[0].ID != id {
		t.Errorf("expected reminder %q, got %+v", id, b.Reminders)
	}

	if _, ok := s.EnsureReminder(empty, store.Reminder{Message: "again"}); ok {
		t.Error("expected second attach to be refused")
	}
	if _, ok := s.EnsureReminder(taken, store.Reminder{Message: "auto"}); ok {
		t.Error("expected booking with reminders to be left alone")
	}
	b, _ = s.Booking(taken)
	if len(b.Reminders) != 1 || b.Reminders[0].Message != "manual" {
		t.Errorf("expected manual reminder kept, got %+v", b.Reminders)
	}
	if _, ok := s.EnsureReminder("missing", store.Reminder{}); ok {
		t.Error("expected missing booking to miss")
	}
}

// --- Concurrency ---

func TestConcurrentWriters(t *testing.T) {
	cfg := store.DefaultConfig()
	s := store.New(cfg)

	const workers, perWorker = 8, 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := s.AddBooking(store.Booking{Price: 1})
				s.UpdateBooking(id, store.BookingPatch{Price: store.Ptr(2.0)})
				_ = s.Bookings()
			}
		}()
	}
	wg.Wait()

	bookings := s.Bookings()
	if len(bookings) != workers*perWorker {
		t.Fatalf("expected %d bookings, got %d", workers*perWorker, len(bookings))
	}
	ids := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if ids[b.ID] {
			t.Fatalf("duplicate id %q", b.ID)
		}
		ids[b.ID] = true
		if b.Price != 2 {
			t.Errorf("expected price 2, got %v", b.Price)
		}
	}
}
