package login

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PasswordPolicy defines the requirements for password complexity
type PasswordPolicy struct {
	MinLength            int
	DisallowCommonPwds   bool
	DisallowNumericOnly  bool
	MaxUserSimilarity    float64
	CommonPasswordsExtra []string
}

// PasswordPolicyChecker defines the interface for checking password complexity
type PasswordPolicyChecker interface {
	// CheckPasswordComplexity verifies the password against the policy.
	// userInputs are attributes of the account (username, names, email) the
	// password must not resemble.
	CheckPasswordComplexity(password string, userInputs ...string) error
	GetPolicy() *PasswordPolicy
}

// DefaultPasswordPolicyChecker implements the PasswordPolicyChecker interface
type DefaultPasswordPolicyChecker struct {
	policy          *PasswordPolicy
	commonPasswords map[string]bool
}

// NewDefaultPasswordPolicyChecker creates a new default password policy checker
func NewDefaultPasswordPolicyChecker(policy *PasswordPolicy) *DefaultPasswordPolicyChecker {
	if policy == nil {
		policy = DefaultPasswordPolicy()
	}

	commonPasswords := make(map[string]bool, len(defaultCommonPasswords)+len(policy.CommonPasswordsExtra))
	for _, p := range defaultCommonPasswords {
		commonPasswords[p] = true
	}
	for _, p := range policy.CommonPasswordsExtra {
		commonPasswords[strings.ToLower(p)] = true
	}

	return &DefaultPasswordPolicyChecker{
		policy:          policy,
		commonPasswords: commonPasswords,
	}
}

var numericOnly = regexp.MustCompile(`^[0-9]+$`)

// CheckPasswordComplexity verifies that a password meets the complexity requirements
func (pc *DefaultPasswordPolicyChecker) CheckPasswordComplexity(password string, userInputs ...string) error {
	if len(password) < pc.policy.MinLength {
		return fmt.Errorf("password must be at least %d characters long", pc.policy.MinLength)
	}

	if pc.policy.DisallowNumericOnly && numericOnly.MatchString(password) {
		return errors.New("password cannot be entirely numeric")
	}

	if pc.policy.DisallowCommonPwds && pc.commonPasswords[strings.ToLower(password)] {
		return errors.New("password is too common, please choose a more secure password")
	}

	if pc.policy.MaxUserSimilarity > 0 {
		lower := strings.ToLower(password)
		for _, input := range userInputs {
			for _, part := range splitAttribute(input) {
				if len(part) < 3 {
					continue
				}
				if similarity(lower, part) > pc.policy.MaxUserSimilarity {
					return errors.New("password is too similar to your personal information")
				}
			}
		}
	}

	return nil
}

// GetPolicy returns the password policy
func (pc *DefaultPasswordPolicyChecker) GetPolicy() *PasswordPolicy {
	return pc.policy
}

// DefaultPasswordPolicy returns a default password policy
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:           8,
		DisallowCommonPwds:  true,
		DisallowNumericOnly: true,
		MaxUserSimilarity:   0.7,
	}
}

var attributeSplit = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// splitAttribute breaks a user attribute into comparable lowercase parts,
// including the whole attribute itself (an email is compared both whole and
// by its local part and domain labels).
func splitAttribute(input string) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil
	}
	parts := attributeSplit.Split(input, -1)
	return append(parts, input)
}

// similarity returns a ratio in [0, 1] of how alike two strings are, based on
// the length of their longest common subsequence relative to their combined
// length. 1.0 means identical.
func similarity(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if a == b {
		return 1
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(b)]
	return 2.0 * float64(lcs) / float64(len(a)+len(b))
}

// defaultCommonPasswords covers the most frequently leaked passwords. The
// policy also accepts extras via CommonPasswordsExtra for deployments that
// ship a larger list.
var defaultCommonPasswords = []string{
	"password", "password1", "password123", "passw0rd", "12345678",
	"123456789", "1234567890", "qwerty123", "qwertyuiop", "iloveyou",
	"admin123", "letmein1", "welcome1", "sunshine", "princess",
	"football", "baseball", "superman", "whatever", "trustno1",
	"dragon123", "monkey123", "shadow123", "master123", "abc12345",
	"senha123", "mudar123",
}
