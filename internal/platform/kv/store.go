// Package kv is a small device-local key/value store used for scoring
// session persistence. It deliberately mirrors browser local-storage
// semantics: flat string keys, opaque byte values, prefix enumeration.
package kv

// Store is implemented by the in-memory store and the file-backed store.
// Implementations are safe for use from a single scoring session; they do
// not coordinate writers across processes.
type Store interface {
	// Get returns the value for key, reporting whether it exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(key string) error
	// Keys lists every stored key that starts with prefix.
	Keys(prefix string) ([]string, error)
}
