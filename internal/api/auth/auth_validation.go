package auth

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	usernameRe    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	upperRe       = regexp.MustCompile(`[A-Z]`)
	lowerRe       = regexp.MustCompile(`[a-z]`)
	digitRe       = regexp.MustCompile(`\d`)
	specialCharRe = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// ValidatePassword checks the password strength rules and returns every
// violated rule, not just the first.
func ValidatePassword(password string) []string {
	if strings.TrimSpace(password) == "" {
		return []string{"Password is required."}
	}

	var errs []string
	if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters long.")
	}
	if len(password) > 128 {
		errs = append(errs, "Password must not exceed 128 characters.")
	}
	if !upperRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one uppercase letter.")
	}
	if !lowerRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one lowercase letter.")
	}
	if !digitRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one number.")
	}
	if !specialCharRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one special character.")
	}
	return errs
}

// ValidateSignUp validates a registration request. It is pure: no I/O, no
// side effects. All violated rules are accumulated in field order (name,
// surname, email, username, password, confirmation) so the reported list
// is deterministic.
func ValidateSignUp(req SignUpRequest) []string {
	var errs []string

	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "Name is required.")
	} else if l := len(strings.TrimSpace(req.Name)); l < 2 || l > 50 {
		errs = append(errs, "Name must be between 2 and 50 characters.")
	}

	if strings.TrimSpace(req.Surname) == "" {
		errs = append(errs, "Surname is required.")
	} else if l := len(strings.TrimSpace(req.Surname)); l < 2 || l > 50 {
		errs = append(errs, "Surname must be between 2 and 50 characters.")
	}

	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, "Email is required.")
	} else if !isValidEmail(req.Email) {
		errs = append(errs, "Please provide a valid email address.")
	}

	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, "Username is required.")
	} else if l := len(req.Username); l < 3 || l > 30 {
		errs = append(errs, "Username must be between 3 and 30 characters.")
	} else if !usernameRe.MatchString(req.Username) {
		errs = append(errs, "Username can only contain letters, numbers, hyphens, and underscores.")
	}

	errs = append(errs, ValidatePassword(req.Password)...)

	if strings.TrimSpace(req.ConfirmPassword) == "" {
		errs = append(errs, "Password confirmation is required.")
	} else if req.Password != req.ConfirmPassword {
		errs = append(errs, "Passwords do not match.")
	}

	return errs
}

// isValidEmail is a pure predicate; parse failures mean invalid input, not
// an error condition.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
