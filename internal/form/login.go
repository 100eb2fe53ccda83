package form

import "strings"

// Field names used in FieldErrors.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
)

// PasswordMinLen is the shortest password the login form accepts.
const PasswordMinLen = 6

// Validators shared by Validate and the TUI inputs.
var (
	EmailField    = Field(Required("email is required"), Email())
	PasswordField = Field(Required("password is required"), MinLen(PasswordMinLen))
)

// Login is the sign-in form.
type Login struct {
	Email    string
	Password string
}

// Normalize trims the email; passwords are taken as typed.
func (l Login) Normalize() Login {
	l.Email = strings.TrimSpace(l.Email)
	return l
}

// Validate checks both fields.
func (l Login) Validate() Result {
	l = l.Normalize()
	return run(
		check{FieldEmail, l.Email, EmailField},
		check{FieldPassword, l.Password, PasswordField},
	)
}
