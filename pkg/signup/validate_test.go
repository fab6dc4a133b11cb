package signup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRegisterRequest(t *testing.T) {
	req := normalizeRegisterRequest(RegisterRequest{
		Username:  "  joaosilva ",
		FirstName: "  joao  ",
		LastName:  "da silva",
		Email:     " Joao@EXAMPLE.com ",
		Password:  "  spaces kept  ",
	})

	assert.Equal(t, "joaosilva", req.Username)
	assert.Equal(t, "Joao", req.FirstName)
	assert.Equal(t, "Da Silva", req.LastName)
	assert.Equal(t, "joao@example.com", req.Email)
	assert.Equal(t, "  spaces kept  ", req.Password)
}

func TestValidateRegisterRequest(t *testing.T) {
	valid := RegisterRequest{
		Username:        "joaosilva",
		FirstName:       "Joao",
		LastName:        "Silva",
		Email:           "joao@example.com",
		Password:        "tr4vessia-lunar",
		PasswordConfirm: "tr4vessia-lunar",
	}

	tests := []struct {
		name      string
		mutate    func(*RegisterRequest)
		wantField string
	}{
		{name: "valid", mutate: func(r *RegisterRequest) {}, wantField: ""},
		{name: "missing first name", mutate: func(r *RegisterRequest) { r.FirstName = "" }, wantField: "first_name"},
		{name: "short first name", mutate: func(r *RegisterRequest) { r.FirstName = "J" }, wantField: "first_name"},
		{name: "digit in first name", mutate: func(r *RegisterRequest) { r.FirstName = "Jo4o" }, wantField: "first_name"},
		{name: "digit in last name", mutate: func(r *RegisterRequest) { r.LastName = "Si1va" }, wantField: "last_name"},
		{name: "empty last name ok", mutate: func(r *RegisterRequest) { r.LastName = "" }, wantField: ""},
		{name: "missing email", mutate: func(r *RegisterRequest) { r.Email = "" }, wantField: "email"},
		{name: "email without at", mutate: func(r *RegisterRequest) { r.Email = "joao.example.com" }, wantField: "email"},
		{name: "email without dot after at", mutate: func(r *RegisterRequest) { r.Email = "joao@example" }, wantField: "email"},
		{name: "dot only before at", mutate: func(r *RegisterRequest) { r.Email = "joao.silva@example" }, wantField: "email"},
		{name: "missing username", mutate: func(r *RegisterRequest) { r.Username = "" }, wantField: "username"},
		{name: "short username", mutate: func(r *RegisterRequest) { r.Username = "jo" }, wantField: "username"},
		{name: "missing password", mutate: func(r *RegisterRequest) { r.Password = "" }, wantField: "password"},
		{name: "password mismatch", mutate: func(r *RegisterRequest) { r.PasswordConfirm = "different" }, wantField: "password_confirm"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			errs := validateRegisterRequest(req)
			if tc.wantField == "" {
				assert.Empty(t, errs)
			} else {
				assert.Contains(t, errs, tc.wantField)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		"username": "username is required",
		"email":    "enter a valid email address",
	}
	assert.Equal(t, "validation failed: email: enter a valid email address; username: username is required", errs.Error())
}
