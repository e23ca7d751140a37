package cart

import (
	"context"
	"strings"
)

// DefaultStorageKey is the well-known key holding the cart payload.
const DefaultStorageKey = "cart_v1"

// Storage is the durable key-value collaborator. Missing keys are reported
// with found=false, never as an error.
type Storage interface {
	Load(ctx context.Context, key string) (value string, found bool, err error)
	Save(ctx context.Context, key, value string) error
}

// OwnerKey scopes the base storage key to one cart owner.
func OwnerKey(base, owner string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultStorageKey
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return base
	}
	return base + ":" + owner
}
