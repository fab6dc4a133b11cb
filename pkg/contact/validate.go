package contact

import (
	"strings"

	"github.com/hubcontatos/contacthub/pkg/utils"
)

const (
	minNameLength        = 2
	minPhoneDigits       = 10
	maxPhoneDigits       = 15
	minDescriptionLength = 5
)

// normalizeForm applies the canonical stored form of each field: names
// trimmed and title-cased, phone reduced to digits, email lowercased,
// description trimmed.
func normalizeForm(form ContactForm) ContactForm {
	form.FirstName = utils.TitleCase(strings.TrimSpace(form.FirstName))
	form.LastName = utils.TitleCase(strings.TrimSpace(form.LastName))
	form.Phone = utils.OnlyDigits(form.Phone)
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.Description = strings.TrimSpace(form.Description)
	return form
}

// validateForm checks field rules on an already-normalized form
func validateForm(form ContactForm) ValidationErrors {
	errs := ValidationErrors{}

	if form.FirstName == "" {
		errs["first_name"] = "first name is required"
	} else if len([]rune(form.FirstName)) < minNameLength {
		errs["first_name"] = "first name must have at least 2 characters"
	} else if utils.ContainsDigit(form.FirstName) {
		errs["first_name"] = "first name cannot contain digits"
	}

	if form.LastName != "" {
		if len([]rune(form.LastName)) < minNameLength {
			errs["last_name"] = "last name must have at least 2 characters"
		} else if utils.ContainsDigit(form.LastName) {
			errs["last_name"] = "last name cannot contain digits"
		}
	}

	if form.Phone == "" {
		errs["phone"] = "phone is required"
	} else if len(form.Phone) < minPhoneDigits {
		errs["phone"] = "phone must have at least 10 digits"
	} else if len(form.Phone) > maxPhoneDigits {
		errs["phone"] = "phone must have at most 15 digits"
	}

	if form.Email != "" && !utils.ValidEmail(form.Email) {
		errs["email"] = "enter a valid email address"
	}

	if form.Description != "" && len([]rune(form.Description)) < minDescriptionLength {
		errs["description"] = "description must have at least 5 characters"
	}

	return errs
}
