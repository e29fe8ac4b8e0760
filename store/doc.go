// Package store provides the in-memory data layer of the studio tool.
//
// A [Store] holds five ordered collections (clients, bookings, galleries,
// packages, referral programs) and four settings singletons (user profile,
// business, notification and system settings). It is the single source of
// truth: readers get deep copies and every write goes through the Mutation API.
//
// # Mutation API
//
//   - AddX stores a record under a freshly generated id and returns the id.
//     CreatedAt is stamped when the payload leaves it zero. Payloads are never
//     validated.
//   - UpdateX merges a typed patch over the record. Nil patch fields are left
//     alone; slices and nested settings objects are replaced whole. A missing
//     id is a no-op reported by a false result, never an error.
//   - DeleteX removes a record. A missing id is a no-op.
//
// # Referential bookkeeping
//
// Bookings and galleries reference clients through clientId, registered in a
// [Registry]. References are soft: nothing checks them on write. Two policies
// in [Config] control the edges the store does maintain:
//
//	cfg := store.DefaultConfig()
//	cfg.ReferralPolicy = store.ReferralSymmetric // patch both sides of referredBy
//	cfg.DeletePolicy = store.DeleteCascade       // remove a client's bookings and galleries
//
// The defaults, [ReferralPermissive] and [DeleteOrphan], leave dangling ids in
// place and derived views skip what they cannot resolve.
//
// # Ids
//
// Ids come from [Config].IDs. The default generates UUIDv7 values; tests
// usually plug in a sequence for readable ids.
//
// # Change feed
//
// [Store.Subscribe] delivers a [Change] for every committed write after the
// store lock is released.
//
// # Errors
//
//   - [ErrUnknownPolicy] - a policy name could not be parsed
package store
