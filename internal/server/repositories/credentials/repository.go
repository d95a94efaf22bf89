package credentials

import "context"

// Repository persists the singleton hashed viewer password. There is no
// dedicated delete operation; setting a new secret replaces the old one.
type Repository interface {
	// DeleteAll removes every stored credential row.
	DeleteAll(ctx context.Context) error
	// Insert stores a new hashed secret.
	Insert(ctx context.Context, hashedSecret string) error
	// Get returns the current hashed secret or common.ErrorNotFound when the
	// password was never set.
	Get(ctx context.Context) (string, error)
}
