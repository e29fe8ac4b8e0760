package store

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jacentio/studiodesk/internal/ident"
)

// IDGenerator produces ids for new records. Implementations must never
// return the same id twice and must be safe for concurrent use.
type IDGenerator interface {
	NewID() string
}

// ReferralPolicy controls how referral edges are maintained on writes.
type ReferralPolicy int

const (
	// ReferralPermissive stores referredBy and referrals exactly as given.
	// Asymmetric edges are tolerated and views skip unresolved ids.
	ReferralPermissive ReferralPolicy = iota

	// ReferralSymmetric patches the other side of an edge whenever a
	// client's referredBy is set, changed or removed.
	ReferralSymmetric
)

func (p ReferralPolicy) String() string {
	switch p {
	case ReferralSymmetric:
		return "symmetric"
	default:
		return "permissive"
	}
}

// DeletePolicy controls what happens to a client's dependents on delete.
type DeletePolicy int

const (
	// DeleteOrphan removes only the client. Bookings and galleries keep a
	// dangling clientId.
	DeleteOrphan DeletePolicy = iota

	// DeleteCascade also removes every registered dependent of the client.
	DeleteCascade
)

func (p DeletePolicy) String() string {
	switch p {
	case DeleteCascade:
		return "cascade"
	default:
		return "orphan"
	}
}

// ParseReferralPolicy parses "permissive" or "symmetric". Empty means permissive.
func ParseReferralPolicy(s string) (ReferralPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return ReferralPermissive, nil
	case "symmetric":
		return ReferralSymmetric, nil
	}
	return 0, fmt.Errorf("referral policy %q: %w", s, ErrUnknownPolicy)
}

// ParseDeletePolicy parses "orphan" or "cascade". Empty means orphan.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "orphan":
		return DeleteOrphan, nil
	case "cascade":
		return DeleteCascade, nil
	}
	return 0, fmt.Errorf("delete policy %q: %w", s, ErrUnknownPolicy)
}

// Config holds configuration for the Store.
type Config struct {
	// ReferralPolicy selects referral edge maintenance.
	// Default: ReferralPermissive
	ReferralPolicy ReferralPolicy

	// DeletePolicy selects what DeleteClient does with dependents.
	// Default: DeleteOrphan
	DeletePolicy DeletePolicy

	// IDs generates record ids, including nested image and reminder ids.
	// Default: ident.UUID (time-ordered UUIDv7)
	IDs IDGenerator

	// Now stamps createdAt and change events.
	// Default: time.Now
	Now func() time.Time

	// Logger receives debug output for no-op mutations.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns the permissive configuration that matches the
// behavior of the original studio tool.
func DefaultConfig() Config {
	return Config{
		ReferralPolicy: ReferralPermissive,
		DeletePolicy:   DeleteOrphan,
		IDs:            ident.UUID{},
		Now:            time.Now,
		Logger:         slog.Default(),
	}
}

// validate fills unset values with defaults.
func (c *Config) validate() {
	if c.ReferralPolicy != ReferralSymmetric {
		c.ReferralPolicy = ReferralPermissive
	}
	if c.DeletePolicy != DeleteCascade {
		c.DeletePolicy = DeleteOrphan
	}
	if c.IDs == nil {
		c.IDs = ident.UUID{}
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
