package api

// Identity resolves the current user. The core never talks to an auth
// provider itself; whatever hosts it (CLI, sync service) supplies one of
// these.
type Identity interface {
	// CurrentUserID returns the signed-in user's id, or false when nobody
	// is signed in.
	CurrentUserID() (string, bool)
}

// LocalIdentity is the no-provider profile: a fixed user id for
// single-user, local-only operation.
type LocalIdentity struct {
	UserID string
}

// NewLocalIdentity returns the default local profile.
func NewLocalIdentity() *LocalIdentity {
	return &LocalIdentity{UserID: "local"}
}

// CurrentUserID implements Identity.
func (l *LocalIdentity) CurrentUserID() (string, bool) {
	if l.UserID == "" {
		return "", false
	}
	return l.UserID, true
}
