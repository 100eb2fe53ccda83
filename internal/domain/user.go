package domain

// User is a member of a company account.
type User struct {
	ID        string
	Name      string
	Email     string
	CompanyID string
}

// Session is the result of a successful login.
type Session struct {
	Token string
	User  User
}

// Authenticated reports whether the session carries a token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// DisplayName is the name shown for u, falling back to email, then ID.
func (u User) DisplayName() string {
	return CoalesceStr(u.Name, u.Email, u.ID)
}

// CoalesceStr returns the first of vals that is not empty.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
