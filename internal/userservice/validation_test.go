package userservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/bloglist/internal/common"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		username string
		valid    bool
		message  string
	}{
		{username: "", valid: false, message: "`username` is required."},
		{username: "a", valid: false, message: "shorter than the minimum allowed length (3)"},
		{username: "pi", valid: false, message: "Path `username` (`pi`) is shorter than the minimum allowed length (3)."},
		{username: "abc", valid: true},
		{username: "mluukkai", valid: true},
		{username: "valid_123.x", valid: true},
		{username: "with space", valid: true},
		{username: strings.Repeat("a", 51), valid: false, message: "longer than the maximum allowed length (50)"},
	}

	for _, tc := range testCases {
		t.Run(tc.username, func(t *testing.T) {
			v := common.NewValidator()
			validateUsername(v, tc.username)
			assert.Equal(t, tc.valid, v.Valid())
			if !tc.valid {
				assert.Contains(t, v.Errors["username"], tc.message)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		password string
		expected error
	}{
		{password: "", expected: ErrPasswordMissing},
		{password: "a", expected: ErrPasswordTooShort},
		{password: "ab", expected: ErrPasswordTooShort},
		{password: "abc", expected: nil},
		{password: "sekret", expected: nil},
		{password: "äöü", expected: nil},
		{password: strings.Repeat("x", 72), expected: nil},
		{password: strings.Repeat("x", 73), expected: ErrPasswordTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			assert.Equal(t, tc.expected, validatePassword(tc.password))
		})
	}
}

func TestValidateName(t *testing.T) {
	v := common.NewValidator()
	validateName(v, "")
	assert.True(t, v.Valid())

	validateName(v, strings.Repeat("n", 101))
	assert.False(t, v.Valid())
}
