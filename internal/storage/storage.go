// Package storage provides the key-value persistence adapter used to keep
// session state across process restarts.
package storage

import "context"

// Keys used by the session store. Values are string-serialized.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Adapter is an async key-value capability. Get reports whether the key was
// present; a missing key is not an error.
type Adapter interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
