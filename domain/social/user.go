package social

import "time"

// User is the stored account record. Relationship data (friends, likes,
// sessions) lives in its own edge collections and is never embedded here.
type User struct {
	ID           string
	Username     string
	Name         string
	Avatar       Image
	PasswordHash []byte
	PasswordSalt []byte

	// FriendOnly is reserved for account privacy; no mutation sets it yet.
	FriendOnly bool

	CreatedAt time.Time
}
