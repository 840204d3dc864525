package model

// Session is the client's record of the currently authenticated user.
// An empty username means unauthenticated; there is no token and no
// expiry, and the session lives only as long as the process.
type Session struct {
	Username string
}

// Authenticated reports whether the session holds a logged-in user.
func (s Session) Authenticated() bool {
	return s.Username != ""
}
