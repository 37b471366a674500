// Package kv provides the key-value capability backing every entity and
// index list in the service. Values are structured records; the store owns
// their serialization.
package kv

import "context"

// Store is the storage capability handlers depend on. Get reports presence
// through its boolean so an absent key is not an error. There is no
// compare-and-swap primitive; callers that read-modify-write shared keys are
// responsible for their own serialization (see the indexes package).
type Store interface {
	// Get unmarshals the value stored under key into dest and reports
	// whether the key existed.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
