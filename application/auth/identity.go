package auth

// Identity is the resolved caller of an operation. The zero value is the
// anonymous caller: allowed on read-only lookups, rejected by mutations.
type Identity struct {
	UserID string
}

// Anonymous is the sentinel identity for requests without a credential.
var Anonymous = Identity{}

// IsAnonymous reports whether the identity carries no resolved user.
func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}
