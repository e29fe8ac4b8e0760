package store

// Relationship defines a parent-child link between two collections, where the
// child carries the parent's id in one of its fields.
type Relationship struct {
	// ParentType is the parent collection (e.g., EntityClient).
	ParentType EntityType

	// ChildType is the child collection (e.g., EntityBooking).
	ChildType EntityType

	// ParentKeyAttr is the json name of the child field holding the parent
	// id (e.g., "clientId").
	ParentKeyAttr string
}

// Registry holds all known entity relationships for cascade deletes and
// dependent lookups.
type Registry struct {
	byParent map[EntityType][]Relationship
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{byParent: make(map[EntityType][]Relationship)}
}

// DefaultRegistry returns the registry every Store starts with: bookings and
// galleries belong to a client through clientId.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Relationship{ParentType: EntityClient, ChildType: EntityBooking, ParentKeyAttr: "clientId"})
	r.Register(Relationship{ParentType: EntityClient, ChildType: EntityGallery, ParentKeyAttr: "clientId"})
	return r
}

// Register adds a relationship to the registry.
func (r *Registry) Register(rel Relationship) {
	r.byParent[rel.ParentType] = append(r.byParent[rel.ParentType], rel)
}

// ChildrenOf returns all child relationships for a given parent type.
func (r *Registry) ChildrenOf(parentType EntityType) []Relationship {
	return r.byParent[parentType]
}

// HasChildren returns true if the parent type has any registered child relationships.
func (r *Registry) HasChildren(parentType EntityType) bool {
	return len(r.byParent[parentType]) > 0
}

// ChildRef identifies one dependent record.
type ChildRef struct {
	Type EntityType `json:"type"`
	ID   string     `json:"id"`
}
