package cart

import "github.com/google/uuid"

// IDFunc returns a fresh line item id.
type IDFunc func() string

// NewLineItemID returns a UUIDv7: a millisecond timestamp followed by random bits,
// so ids stay unique for the life of the process and sort by creation time.
func NewLineItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
