package store

import "errors"

// ErrUnknownPolicy is returned when a policy name cannot be parsed.
// The Mutation API itself never returns errors: updates and deletes of
// missing ids are reported through their bool result.
var ErrUnknownPolicy = errors.New("studiodesk: unknown store policy")
