package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User roles. New accounts always start as RoleCustomer; admins are seeded
// or promoted out of band.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// LoginRequest represents the login request body. Username may be either
// the username or the email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpRequest represents the registration request body. It is transient:
// validated, consumed and never persisted verbatim.
type SignUpRequest struct {
	Name            string `json:"name"`
	Surname         string `json:"surname"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthPayload is the data returned by both login and sign-up.
type AuthPayload struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Usertype string `json:"usertype"`
	Token    string `json:"token"`
}

// UserAuth is the stored credential record, as the repository returns it.
// The password hash never appears in any response.
type UserAuth struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Surname         string     `json:"surname"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	PasswordHash    string     `json:"-"`
	Usertype        string     `json:"usertype"`
	IsEmailVerified bool       `json:"is_email_verified"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
}

// CreateUserParams carries the already-normalized, already-hashed fields
// the repository persists for a new account.
type CreateUserParams struct {
	Name         string
	Surname      string
	Email        string
	Username     string
	PasswordHash string
	Usertype     string
}

// Claims are the session-token claims. Subject carries the username; the
// registered ID claim (jti) is a random UUID per token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
