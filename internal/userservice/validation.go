package userservice

import (
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrPasswordMissing  = errors.New("password missing")
	ErrPasswordTooShort = errors.New("password must have atleast 3 characters")
	ErrPasswordTooLong  = errors.New("password must not be more than 72 bytes long")
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	maxNameLength     = 100
	minPasswordLength = 3
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

// validatePassword runs before any other check on a new user.
func validatePassword(password string) error {
	switch {
	case password == "":
		return ErrPasswordMissing
	case len([]rune(password)) < minPasswordLength:
		return ErrPasswordTooShort
	case len(password) > maxPasswordBytes:
		return ErrPasswordTooLong
	}

	return nil
}

func usernameTooShort(username string) string {
	return fmt.Sprintf("Path `username` (`%s`) is shorter than the minimum allowed length (%d).", username, minUsernameLength)
}

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "Path `username` is required.")
	v.Check(len([]rune(username)) >= minUsernameLength, "username", usernameTooShort(username))
	v.Check(len([]rune(username)) <= maxUsernameLength, "username", fmt.Sprintf("Path `username` is longer than the maximum allowed length (%d).", maxUsernameLength))
}

func validateName(v *common.Validator, name string) {
	v.Check(v.CheckStringLength(name, 0, maxNameLength), "name", "must not be more than 100 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
