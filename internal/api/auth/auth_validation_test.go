package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignUpRequest() SignUpRequest {
	return SignUpRequest{
		Name:            "Ada",
		Surname:         "Lovelace",
		Email:           "ada@example.com",
		Username:        "ada_lovelace",
		Password:        "Str0ng!Pass",
		ConfirmPassword: "Str0ng!Pass",
	}
}

func TestValidatePassword(t *testing.T) {
	t.Run("StrongPassword", func(t *testing.T) {
		errs := ValidatePassword("Str0ng!Pass")
		assert.Empty(t, errs)
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		errs := ValidatePassword("  ")
		assert.Equal(t, []string{"Password is required."}, errs)
	})

	t.Run("AccumulatesAllMissingClasses", func(t *testing.T) {
		// Long enough and all lowercase, so exactly the three missing
		// character classes must be reported together.
		errs := ValidatePassword("abcdefgh")
		assert.Contains(t, errs, "Password must contain at least one uppercase letter.")
		assert.Contains(t, errs, "Password must contain at least one number.")
		assert.Contains(t, errs, "Password must contain at least one special character.")
		assert.NotContains(t, errs, "Password must contain at least one lowercase letter.")
		assert.NotContains(t, errs, "Password must be at least 8 characters long.")
	})

	t.Run("MaxLengthAccepted", func(t *testing.T) {
		errs := ValidatePassword("Aa1!" + strings.Repeat("x", 124))
		assert.Empty(t, errs)
	})

	t.Run("OverMaxLengthRejected", func(t *testing.T) {
		errs := ValidatePassword("Aa1!" + strings.Repeat("x", 125))
		assert.Equal(t, []string{"Password must not exceed 128 characters."}, errs)
	})

	t.Run("TooShortAndMissingClasses", func(t *testing.T) {
		errs := ValidatePassword("abc")
		assert.Contains(t, errs, "Password must be at least 8 characters long.")
		assert.Contains(t, errs, "Password must contain at least one uppercase letter.")
		assert.Len(t, errs, 4)
	})
}

func TestValidateSignUp(t *testing.T) {
	t.Run("ValidRequest", func(t *testing.T) {
		errs := ValidateSignUp(validSignUpRequest())
		assert.Empty(t, errs)
	})

	t.Run("AllFieldsMissingInFieldOrder", func(t *testing.T) {
		errs := ValidateSignUp(SignUpRequest{})
		assert.Equal(t, []string{
			"Name is required.",
			"Surname is required.",
			"Email is required.",
			"Username is required.",
			"Password is required.",
			"Password confirmation is required.",
		}, errs)
	})

	t.Run("DeterministicOrder", func(t *testing.T) {
		req := validSignUpRequest()
		req.Name = "A"
		req.Username = "x"
		first := ValidateSignUp(req)
		second := ValidateSignUp(req)
		assert.Equal(t, first, second)
		assert.Equal(t, []string{
			"Name must be between 2 and 50 characters.",
			"Username must be between 3 and 30 characters.",
		}, first)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		req := validSignUpRequest()
		req.Email = "not-an-email"
		errs := ValidateSignUp(req)
		assert.Equal(t, []string{"Please provide a valid email address."}, errs)
	})

	t.Run("UsernameWithForbiddenCharacters", func(t *testing.T) {
		req := validSignUpRequest()
		req.Username = "ada lovelace!"
		errs := ValidateSignUp(req)
		assert.Equal(t, []string{"Username can only contain letters, numbers, hyphens, and underscores."}, errs)
	})

	t.Run("UsernameAllowsHyphenAndUnderscore", func(t *testing.T) {
		req := validSignUpRequest()
		req.Username = "ada-love_lace1"
		assert.Empty(t, ValidateSignUp(req))
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		req := validSignUpRequest()
		req.ConfirmPassword = "Str0ng!Pass2"
		errs := ValidateSignUp(req)
		assert.Equal(t, []string{"Passwords do not match."}, errs)
	})

	t.Run("WeakPasswordAndMismatchAccumulate", func(t *testing.T) {
		req := validSignUpRequest()
		req.Password = "weakpass"
		req.ConfirmPassword = "different"
		errs := ValidateSignUp(req)
		assert.Contains(t, errs, "Password must contain at least one uppercase letter.")
		assert.Contains(t, errs, "Passwords do not match.")
	})
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, isValidEmail("user@example.com"))
	assert.True(t, isValidEmail("user.name+tag@sub.example.com"))
	assert.False(t, isValidEmail("user@"))
	assert.False(t, isValidEmail("Ada <ada@example.com>"))
	assert.False(t, isValidEmail("plainaddress"))
}
