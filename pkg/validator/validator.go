package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

// ValidationErrors maps field names to human readable problems.
type ValidationErrors map[string]string

// HasErrors reports whether any field failed validation.
func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// Add records a problem for a field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// Details converts the errors into a generic map for error payloads.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for field, message := range v {
		details[field] = message
	}
	return details
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateRegister checks the registration payload.
func ValidateRegister(username, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) < 3 {
		errs.Add("username", "Username must be at least 3 characters")
	} else if len(username) > 50 {
		errs.Add("username", "Username is too long")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "Username can only contain letters, numbers, _ and -")
	}

	validateEmail(email, errs)
	ValidatePassword(password, errs)

	return errs
}

// ValidatePassword applies the minimum password rules.
func ValidatePassword(password string, errs ValidationErrors) {
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	} else if len(password) > 128 {
		errs.Add("password", "Password is too long")
	}
}

// ValidateEmail checks a standalone email value.
func ValidateEmail(email string) ValidationErrors {
	errs := make(ValidationErrors)
	validateEmail(email, errs)
	return errs
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}
