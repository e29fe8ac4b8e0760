package store

import (
	"log/slog"
	"slices"
	"sync"
	"time"
)

// record is implemented by every collection entity.
type record interface {
	Client | Booking | Gallery | Package | ReferralProgram
}

// collection keeps records in insertion order with an id index.
type collection[T record] struct {
	items []T
	pos   map[string]int
	key   func(*T) string
}

func newCollection[T record](key func(*T) string) collection[T] {
	return collection[T]{pos: make(map[string]int), key: key}
}

func (c *collection[T]) index(id string) (int, bool) {
	i, ok := c.pos[id]
	return i, ok
}

func (c *collection[T]) add(v T) {
	c.pos[c.key(&v)] = len(c.items)
	c.items = append(c.items, v)
}

func (c *collection[T]) remove(id string) bool {
	i, ok := c.pos[id]
	if !ok {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	delete(c.pos, id)
	for j := i; j < len(c.items); j++ {
		c.pos[c.key(&c.items[j])] = j
	}
	return true
}

func (c *collection[T]) list(clone func(T) T) []T {
	out := make([]T, len(c.items))
	for i, v := range c.items {
		out[i] = clone(v)
	}
	return out
}

// Store is the in-memory source of truth for clients, bookings, galleries,
// packages, referral programs and the four settings singletons.
//
// All methods are safe for concurrent use. Reads return deep copies; writes
// are serialized and become visible atomically.
type Store struct {
	mu       sync.RWMutex
	config   Config
	registry *Registry
	logger   *slog.Logger
	hub      hub

	clients   collection[Client]
	bookings  collection[Booking]
	galleries collection[Gallery]
	packages  collection[Package]
	programs  collection[ReferralProgram]

	profile       UserProfile
	business      BusinessSettings
	notifications NotificationSettings
	system        SystemSettings
}

// New creates an empty Store with default settings singletons and the
// default relationship registry.
func New(config Config) *Store {
	return NewWithRegistry(config, DefaultRegistry())
}

// NewWithRegistry creates an empty Store using the given relationship registry.
func NewWithRegistry(config Config, registry *Registry) *Store {
	config.validate()
	if registry == nil {
		registry = NewRegistry()
	}
	return &Store{
		config:        config,
		registry:      registry,
		logger:        config.Logger,
		clients:       newCollection(func(c *Client) string { return c.ID }),
		bookings:      newCollection(func(b *Booking) string { return b.ID }),
		galleries:     newCollection(func(g *Gallery) string { return g.ID }),
		packages:      newCollection(func(p *Package) string { return p.ID }),
		programs:      newCollection(func(r *ReferralProgram) string { return r.ID }),
		profile:       DefaultUserProfile(),
		business:      DefaultBusinessSettings(),
		notifications: DefaultNotificationSettings(),
		system:        DefaultSystemSettings(),
	}
}

// Registry returns the relationship registry.
func (s *Store) Registry() *Registry {
	return s.registry
}

// Config returns the store configuration after defaults were applied.
func (s *Store) Config() Config {
	return s.config
}

// Subscribe registers fn to receive every committed change. fn runs on the
// writer's goroutine after the store lock is released, so it may read the
// store but should return quickly. The returned func cancels the subscription.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	return s.hub.subscribe(fn)
}

func (s *Store) now() time.Time {
	return s.config.Now()
}

func (s *Store) change(entity EntityType, action Action, id string) Change {
	return Change{Entity: entity, Action: action, ID: id, At: s.now()}
}

func (s *Store) miss(entity EntityType, action Action, id string) {
	s.logger.Debug("mutation matched no record",
		"entity", entity,
		"action", action,
		"id", id,
	)
}

// --- Reads ---

// Clients returns every client in insertion order.
func (s *Store) Clients() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients.list(cloneClient)
}

// Bookings returns every booking in insertion order.
func (s *Store) Bookings() []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookings.list(cloneBooking)
}

// Galleries returns every gallery in insertion order.
func (s *Store) Galleries() []Gallery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.galleries.list(cloneGallery)
}

// Packages returns every package in insertion order.
func (s *Store) Packages() []Package {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.packages.list(clonePackage)
}

// ReferralPrograms returns every referral program in insertion order.
func (s *Store) ReferralPrograms() []ReferralProgram {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.programs.list(cloneProgram)
}

// Client returns the client with id.
func (s *Store) Client(id string) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.clients.index(id); ok {
		return cloneClient(s.clients.items[i]), true
	}
	return Client{}, false
}

// Booking returns the booking with id.
func (s *Store) Booking(id string) (Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.bookings.index(id); ok {
		return cloneBooking(s.bookings.items[i]), true
	}
	return Booking{}, false
}

// Gallery returns the gallery with id.
func (s *Store) Gallery(id string) (Gallery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.galleries.index(id); ok {
		return cloneGallery(s.galleries.items[i]), true
	}
	return Gallery{}, false
}

// Package returns the package with id.
func (s *Store) Package(id string) (Package, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.packages.index(id); ok {
		return clonePackage(s.packages.items[i]), true
	}
	return Package{}, false
}

// ReferralProgram returns the referral program with id.
func (s *Store) ReferralProgram(id string) (ReferralProgram, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.programs.index(id); ok {
		return s.programs.items[i], true
	}
	return ReferralProgram{}, false
}

// UserProfile returns the current profile.
func (s *Store) UserProfile() UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// BusinessSettings returns the current business settings.
func (s *Store) BusinessSettings() BusinessSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBusiness(s.business)
}

// NotificationSettings returns the current notification settings.
func (s *Store) NotificationSettings() NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notifications
}

// SystemSettings returns the current system settings.
func (s *Store) SystemSettings() SystemSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system
}

// Snapshot is a consistent copy of the whole store.
type Snapshot struct {
	Clients              []Client             `json:"clients"`
	Bookings             []Booking            `json:"bookings"`
	Galleries            []Gallery            `json:"galleries"`
	Packages             []Package            `json:"packages"`
	ReferralPrograms     []ReferralProgram    `json:"referralPrograms"`
	UserProfile          UserProfile          `json:"userProfile"`
	BusinessSettings     BusinessSettings     `json:"businessSettings"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
	SystemSettings       SystemSettings       `json:"systemSettings"`
	TakenAt              time.Time            `json:"takenAt"`
}

// Snapshot copies every collection and singleton under a single read lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Clients:              s.clients.list(cloneClient),
		Bookings:             s.bookings.list(cloneBooking),
		Galleries:            s.galleries.list(cloneGallery),
		Packages:             s.packages.list(clonePackage),
		ReferralPrograms:     s.programs.list(cloneProgram),
		UserProfile:          s.profile,
		BusinessSettings:     cloneBusiness(s.business),
		NotificationSettings: s.notifications,
		SystemSettings:       s.system,
		TakenAt:              s.now(),
	}
}

// Dependents lists the records that reference clientID through a registered
// relationship, bookings before galleries, each in insertion order.
func (s *Store) Dependents(clientID string) []ChildRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dependentsLocked(EntityClient, clientID)
}

func (s *Store) dependentsLocked(parent EntityType, id string) []ChildRef {
	if !s.registry.HasChildren(parent) {
		return nil
	}
	var refs []ChildRef
	for _, rel := range s.registry.ChildrenOf(parent) {
		switch rel.ChildType {
		case EntityBooking:
			for _, b := range s.bookings.items {
				if bookingField(&b, rel.ParentKeyAttr) == id {
					refs = append(refs, ChildRef{Type: EntityBooking, ID: b.ID})
				}
			}
		case EntityGallery:
			for _, g := range s.galleries.items {
				if galleryField(&g, rel.ParentKeyAttr) == id {
					refs = append(refs, ChildRef{Type: EntityGallery, ID: g.ID})
				}
			}
		}
	}
	return refs
}

func bookingField(b *Booking, attr string) string {
	switch attr {
	case "clientId":
		return b.ClientID
	case "packageId":
		return b.PackageID
	}
	return ""
}

func galleryField(g *Gallery, attr string) string {
	if attr == "clientId" {
		return g.ClientID
	}
	return ""
}

// --- Mutations: clients ---

// AddClient stores c under a new id and returns it. CreatedAt is stamped when
// zero. Under ReferralSymmetric the referrer named by ReferredBy gains the new
// id in its Referrals, and every client listed in Referrals is moved under the
// new client.
func (s *Store) AddClient(c Client) string {
	s.mu.Lock()
	c = cloneClient(c)
	c.ID = s.config.IDs.NewID()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.clients.add(c)
	changes := []Change{s.change(EntityClient, ActionCreate, c.ID)}
	if s.config.ReferralPolicy == ReferralSymmetric {
		changes = append(changes, s.linkReferrerLocked(c.ReferredBy, c.ID)...)
		for _, referred := range c.Referrals {
			changes = append(changes, s.setReferrerLocked(referred, c.ID)...)
		}
	}
	s.mu.Unlock()

	s.hub.publish(changes)
	return c.ID
}

// UpdateClient merges p into the client with id. It returns false, changing
// nothing, when no such client exists.
func (s *Store) UpdateClient(id string, p ClientPatch) bool {
	s.mu.Lock()
	i, ok := s.clients.index(id)
	if !ok {
		s.mu.Unlock()
		s.miss(EntityClient, ActionUpdate, id)
		return false
	}
	oldReferrer := s.clients.items[i].ReferredBy
	oldReferrals := slices.Clone(s.clients.items[i].Referrals)
	p.apply(&s.clients.items[i])
	newReferrer := s.clients.items[i].ReferredBy

	changes := []Change{s.change(EntityClient, ActionUpdate, id)}
	if s.config.ReferralPolicy == ReferralSymmetric {
		if oldReferrer != newReferrer {
			changes = append(changes, s.unlinkReferrerLocked(oldReferrer, id)...)
			changes = append(changes, s.linkReferrerLocked(newReferrer, id)...)
		}
		if p.Referrals != nil {
			changes = append(changes, s.relinkReferralsLocked(id, oldReferrals, *p.Referrals)...)
		}
	}
	s.mu.Unlock()

	s.hub.publish(changes)
	return true
}

// DeleteClient removes the client with id. Under DeleteCascade every
// registered dependent is removed too; under ReferralSymmetric both sides of
// the client's referral edges are cleaned up. Returns false when absent.
func (s *Store) DeleteClient(id string) bool {
	s.mu.Lock()
	i, ok := s.clients.index(id)
	if !ok {
		s.mu.Unlock()
		s.miss(EntityClient, ActionDelete, id)
		return false
	}
	victim := s.clients.items[i]

	var changes []Change
	if s.config.DeletePolicy == DeleteCascade {
		for _, ref := range s.dependentsLocked(EntityClient, id) {
			if s.removeLocked(ref.Type, ref.ID) {
				changes = append(changes, s.change(ref.Type, ActionDelete, ref.ID))
			}
		}
	}

	s.clients.remove(id)
	changes = append(changes, s.change(EntityClient, ActionDelete, id))

	if s.config.ReferralPolicy == ReferralSymmetric {
		changes = append(changes, s.unlinkReferrerLocked(victim.ReferredBy, id)...)
		for _, referred := range victim.Referrals {
			j, ok := s.clients.index(referred)
			if !ok || s.clients.items[j].ReferredBy != id {
				continue
			}
			s.clients.items[j].ReferredBy = ""
			changes = append(changes, s.change(EntityClient, ActionUpdate, referred))
		}
	}
	s.mu.Unlock()

	s.hub.publish(changes)
	return true
}

// linkReferrerLocked adds referredID to referrerID's Referrals.
func (s *Store) linkReferrerLocked(referrerID, referredID string) []Change {
	if referrerID == "" || referrerID == referredID {
		return nil
	}
	j, ok := s.clients.index(referrerID)
	if !ok {
		return nil
	}
	ref := &s.clients.items[j]
	if slices.Contains(ref.Referrals, referredID) {
		return nil
	}
	ref.Referrals = append(ref.Referrals, referredID)
	return []Change{s.change(EntityClient, ActionUpdate, referrerID)}
}

// setReferrerLocked points referredID's ReferredBy at referrerID, taking it
// off the list of the referrer it had before.
func (s *Store) setReferrerLocked(referredID, referrerID string) []Change {
	if referredID == referrerID {
		return nil
	}
	j, ok := s.clients.index(referredID)
	if !ok {
		return nil
	}
	prev := s.clients.items[j].ReferredBy
	if prev == referrerID {
		return nil
	}
	changes := s.unlinkReferrerLocked(prev, referredID)
	s.clients.items[j].ReferredBy = referrerID
	return append(changes, s.change(EntityClient, ActionUpdate, referredID))
}

// relinkReferralsLocked mirrors a replaced Referrals list of referrerID onto
// the referred clients. Dropped clients lose their referredBy, added ones are
// moved under referrerID.
func (s *Store) relinkReferralsLocked(referrerID string, before, after []string) []Change {
	var changes []Change
	for _, referred := range before {
		if slices.Contains(after, referred) {
			continue
		}
		j, ok := s.clients.index(referred)
		if !ok || s.clients.items[j].ReferredBy != referrerID {
			continue
		}
		s.clients.items[j].ReferredBy = ""
		changes = append(changes, s.change(EntityClient, ActionUpdate, referred))
	}
	for _, referred := range after {
		if slices.Contains(before, referred) {
			continue
		}
		changes = append(changes, s.setReferrerLocked(referred, referrerID)...)
	}
	return changes
}

// unlinkReferrerLocked removes referredID from referrerID's Referrals.
func (s *Store) unlinkReferrerLocked(referrerID, referredID string) []Change {
	if referrerID == "" {
		return nil
	}
	j, ok := s.clients.index(referrerID)
	if !ok {
		return nil
	}
	ref := &s.clients.items[j]
	n := len(ref.Referrals)
	ref.Referrals = slices.DeleteFunc(ref.Referrals, func(x string) bool { return x == referredID })
	if len(ref.Referrals) == n {
		return nil
	}
	return []Change{s.change(EntityClient, ActionUpdate, referrerID)}
}

func (s *Store) removeLocked(t EntityType, id string) bool {
	switch t {
	case EntityClient:
		return s.clients.remove(id)
	case EntityBooking:
		return s.bookings.remove(id)
	case EntityGallery:
		return s.galleries.remove(id)
	case EntityPackage:
		return s.packages.remove(id)
	case EntityReferralProgram:
		return s.programs.remove(id)
	}
	return false
}

// --- Mutations: bookings ---

// AddBooking stores b under a new id and returns it. Reminders without an id
// get one.
func (s *Store) AddBooking(b Booking) string {
	s.mu.Lock()
	b = cloneBooking(b)
	b.ID = s.config.IDs.NewID()
	s.assignReminderIDs(b.Reminders)
	s.bookings.add(b)
	changes := []Change{s.change(EntityBooking, ActionCreate, b.ID)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return b.ID
}

// UpdateBooking merges p into the booking with id. A Reminders patch replaces
// the whole list. Returns false when absent.
func (s *Store) UpdateBooking(id string, p BookingPatch) bool {
	s.mu.Lock()
	i, ok := s.bookings.index(id)
	if !ok {
		s.mu.Unlock()
		s.miss(EntityBooking, ActionUpdate, id)
		return false
	}
	p.apply(&s.bookings.items[i])
	if p.Reminders != nil {
		s.assignReminderIDs(s.bookings.items[i].Reminders)
	}
	changes := []Change{s.change(EntityBooking, ActionUpdate, id)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return true
}

// DeleteBooking removes the booking with id. Returns false when absent.
func (s *Store) DeleteBooking(id string) bool {
	return s.deleteOne(EntityBooking, id)
}

// --- Mutations: galleries ---

// AddGallery stores g under a new id and returns it. CreatedAt is stamped when
// zero and images without an id get one.
func (s *Store) AddGallery(g Gallery) string {
	s.mu.Lock()
	g = cloneGallery(g)
	g.ID = s.config.IDs.NewID()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = s.now()
	}
	s.assignImageIDs(g.Images)
	s.galleries.add(g)
	changes := []Change{s.change(EntityGallery, ActionCreate, g.ID)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return g.ID
}

// UpdateGallery merges p into the gallery with id. An Images patch replaces
// the whole list. Returns false when absent.
func (s *Store) UpdateGallery(id string, p GalleryPatch) bool {
	s.mu.Lock()
	i, ok := s.galleries.index(id)
	if !ok {
		s.mu.Unlock()
		s.miss(EntityGallery, ActionUpdate, id)
		return false
	}
	p.apply(&s.galleries.items[i])
	if p.Images != nil {
		s.assignImageIDs(s.galleries.items[i].Images)
	}
	changes := []Change{s.change(EntityGallery, ActionUpdate, id)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return true
}

// AppendGalleryImage adds img to the end of a gallery's image list and
// returns the image id. The second result is false when the gallery is absent.
func (s *Store) AppendGalleryImage(galleryID string, img GalleryImage) (string, bool) {
	s.mu.Lock()
	i, ok := s.galleries.index(galleryID)
	if !ok {
		s.mu.Unlock()
		s.miss(EntityGallery, ActionUpdate, galleryID)
		return "", false
	}
	g := &s.galleries.items[i]
	g.Images = append(g.Images, img)
	s.assignImageIDs(g.Images)
	imgID := g.Images[len(g.Images)-1].ID
	changes := []Change{s.change(EntityGallery, ActionUpdate, galleryID)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return imgID, true
}

// DeleteGallery removes the gallery with id. Returns false when absent.
func (s *Store) DeleteGallery(id string) bool {
	return s.deleteOne(EntityGallery, id)
}

// --- Mutations: packages ---

// AddPackage stores p under a new id and returns it.
func (s *Store) AddPackage(p Package) string {
	s.mu.Lock()
	p = clonePackage(p)
	p.ID = s.config.IDs.NewID()
	s.packages.add(p)
	changes := []Change{s.change(EntityPackage, ActionCreate, p.ID)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return p.ID
}

// UpdatePackage merges p into the package with id. Returns false when absent.
func (s *Store) UpdatePackage(id string, p PackagePatch) bool {
	s.mu.Lock()
	i, ok := s.packages.index(id)
	if !ok {
		s.mu.Unlock()
		s.miss(EntityPackage, ActionUpdate, id)
		return false
	}
	p.apply(&s.packages.items[i])
	changes := []Change{s.change(EntityPackage, ActionUpdate, id)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return true
}

// DeletePackage removes the package with id. Bookings keep their packageId.
func (s *Store) DeletePackage(id string) bool {
	return s.deleteOne(EntityPackage, id)
}

// --- Mutations: referral programs ---

// AddReferralProgram stores r under a new id and returns it.
func (s *Store) AddReferralProgram(r ReferralProgram) string {
	s.mu.Lock()
	r.ID = s.config.IDs.NewID()
	s.programs.add(r)
	changes := []Change{s.change(EntityReferralProgram, ActionCreate, r.ID)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return r.ID
}

// UpdateReferralProgram merges p into the program with id. Returns false when absent.
func (s *Store) UpdateReferralProgram(id string, p ReferralProgramPatch) bool {
	s.mu.Lock()
	i, ok := s.programs.index(id)
	if !ok {
		s.mu.Unlock()
		s.miss(EntityReferralProgram, ActionUpdate, id)
		return false
	}
	p.apply(&s.programs.items[i])
	changes := []Change{s.change(EntityReferralProgram, ActionUpdate, id)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return true
}

// DeleteReferralProgram removes the program with id. Returns false when absent.
func (s *Store) DeleteReferralProgram(id string) bool {
	return s.deleteOne(EntityReferralProgram, id)
}

func (s *Store) deleteOne(t EntityType, id string) bool {
	s.mu.Lock()
	if !s.removeLocked(t, id) {
		s.mu.Unlock()
		s.miss(t, ActionDelete, id)
		return false
	}
	changes := []Change{s.change(t, ActionDelete, id)}
	s.mu.Unlock()

	s.hub.publish(changes)
	return true
}

// --- Mutations: settings ---

// UpdateUserProfile merges p into the profile.
func (s *Store) UpdateUserProfile(p UserProfilePatch) {
	s.mu.Lock()
	p.apply(&s.profile)
	changes := []Change{s.change(EntityUserProfile, ActionUpdate, "")}
	s.mu.Unlock()
	s.hub.publish(changes)
}

// UpdateBusinessSettings merges p into the business settings.
func (s *Store) UpdateBusinessSettings(p BusinessSettingsPatch) {
	s.mu.Lock()
	p.apply(&s.business)
	changes := []Change{s.change(EntityBusiness, ActionUpdate, "")}
	s.mu.Unlock()
	s.hub.publish(changes)
}

// UpdateNotificationSettings merges p into the notification settings.
func (s *Store) UpdateNotificationSettings(p NotificationSettingsPatch) {
	s.mu.Lock()
	p.apply(&s.notifications)
	changes := []Change{s.change(EntityNotifications, ActionUpdate, "")}
	s.mu.Unlock()
	s.hub.publish(changes)
}

// UpdateSystemSettings merges p into the system settings.
func (s *Store) UpdateSystemSettings(p SystemSettingsPatch) {
	s.mu.Lock()
	p.apply(&s.system)
	changes := []Change{s.change(EntitySystem, ActionUpdate, "")}
	s.mu.Unlock()
	s.hub.publish(changes)
}

// assignImageIDs gives every image without a unique id a fresh one.
func (s *Store) assignImageIDs(images []GalleryImage) {
	seen := make(map[string]bool, len(images))
	for i := range images {
		if images[i].ID == "" || seen[images[i].ID] {
			images[i].ID = s.config.IDs.NewID()
		}
		seen[images[i].ID] = true
	}
}

// assignReminderIDs gives every reminder without a unique id a fresh one.
func (s *Store) assignReminderIDs(reminders []Reminder) {
	seen := make(map[string]bool, len(reminders))
	for i := range reminders {
		if reminders[i].ID == "" || seen[reminders[i].ID] {
			reminders[i].ID = s.config.IDs.NewID()
		}
		seen[reminders[i].ID] = true
	}
}
