package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "11999998888", OnlyDigits("(11) 99999-8888"))
	assert.Equal(t, "", OnlyDigits("no digits here"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Joao Da Silva", TitleCase("joao da silva"))
	assert.Equal(t, "Maria", TitleCase("MARIA"))
	assert.Equal(t, "", TitleCase(""))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.True(t, ValidEmail("first.last@sub.example.org"))
	assert.False(t, ValidEmail("user@example"))
	assert.False(t, ValidEmail("user.example.com"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail("user@"))
}
