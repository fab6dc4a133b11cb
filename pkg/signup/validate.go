package signup

import (
	"strings"

	"github.com/hubcontatos/contacthub/pkg/utils"
)

const (
	minFirstNameLength = 2
	minUsernameLength  = 4
)

// RegisterRequest represents a registration submission
type RegisterRequest struct {
	Username        string
	FirstName       string
	LastName        string
	Email           string
	Password        string
	PasswordConfirm string
}

// normalizeRegisterRequest applies the canonical form each field is stored
// in: names trimmed and title-cased, email trimmed and lowercased, username
// trimmed. Passwords are never altered.
func normalizeRegisterRequest(req RegisterRequest) RegisterRequest {
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = utils.TitleCase(strings.TrimSpace(req.FirstName))
	req.LastName = utils.TitleCase(strings.TrimSpace(req.LastName))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return req
}

// validateRegisterRequest checks field-level rules on an already-normalized
// request. Uniqueness and password complexity are checked by the service,
// which has the collaborators those rules need.
func validateRegisterRequest(req RegisterRequest) ValidationErrors {
	errs := ValidationErrors{}

	if req.FirstName == "" {
		errs["first_name"] = "first name is required"
	} else if len([]rune(req.FirstName)) < minFirstNameLength {
		errs["first_name"] = "first name must have at least 2 characters"
	} else if utils.ContainsDigit(req.FirstName) {
		errs["first_name"] = "first name cannot contain digits"
	}

	if req.LastName != "" && utils.ContainsDigit(req.LastName) {
		errs["last_name"] = "last name cannot contain digits"
	}

	if req.Email == "" {
		errs["email"] = "email is required"
	} else if !utils.ValidEmail(req.Email) {
		errs["email"] = "enter a valid email address"
	}

	if req.Username == "" {
		errs["username"] = "username is required"
	} else if len([]rune(req.Username)) < minUsernameLength {
		errs["username"] = "username must have at least 4 characters"
	}

	if req.Password == "" {
		errs["password"] = "password is required"
	} else if req.Password != req.PasswordConfirm {
		errs["password_confirm"] = "passwords do not match"
	}

	return errs
}
