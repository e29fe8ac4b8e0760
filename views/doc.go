// Package views computes derived data from store contents: revenue and count
// aggregates, upcoming and recent sorts, the referral network and search
// filters.
//
// Every function is a pure read over the slices it is given. Callers pass the
// reference time explicitly so results are deterministic. Joins through
// clientId or referral ids that do not resolve are treated as absent.
package views
