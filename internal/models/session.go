package models

// Session is the authenticated identity and credential held by the
// running client. User and Token are either both set or both zero; a
// half-set session never exists (construct through NewSession or use
// the zero value).
type Session struct {
	User  *User
	Token string
}

func NewSession(user User, token string) Session {
	if token == "" || user.ID == "" {
		return Session{}
	}
	u := user
	return Session{User: &u, Token: token}
}

func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Role returns the session's role, or the empty role when
// unauthenticated.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// UserID returns the session's user id, or "" when unauthenticated.
func (s Session) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}
