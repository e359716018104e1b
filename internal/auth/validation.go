package auth

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Credentials is the admin login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks credentials before they are sent:
// - email present and well formed
// - password present
func (c Credentials) Validate() error {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return errors.New("email required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return errors.New("email must be a valid address")
	}
	if c.Password == "" {
		return errors.New("password required")
	}
	return nil
}
