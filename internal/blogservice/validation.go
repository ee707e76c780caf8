package blogservice

import (
	"errors"
	"math"
	"strings"

	"github.com/sushihentaime/bloglist/internal/common"
)

// ErrMissingFields is returned when a new blog lacks its title or its url.
var ErrMissingFields = errors.New("url and title are required")

const (
	maxTitleLength   = 200
	maxAuthorLength  = 100
	maxURLLength     = 2048
	maxCommentLength = 1000
	// likes is a postgres integer column
	maxLikes = math.MaxInt32
)

// requireTitleAndURL rejects a blog missing either field.
func requireTitleAndURL(title, url string) error {
	if title == "" || url == "" {
		return ErrMissingFields
	}

	return nil
}

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must not be empty")
	v.Check(v.CheckStringLength(title, 0, maxTitleLength), "title", "must not be more than 200 characters long")
}

func validateURL(v *common.Validator, rawURL string) {
	v.Check(rawURL != "", "url", "must not be empty")
	v.Check(len(rawURL) <= maxURLLength, "url", "must not be more than 2048 bytes long")
	v.Check(!strings.ContainsAny(rawURL, " \t\r\n"), "url", "must not contain whitespace")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(v.CheckStringLength(author, 0, maxAuthorLength), "author", "must not be more than 100 characters long")
}

func validateLikes(v *common.Validator, likes int) {
	v.Check(likes >= 0, "likes", "must not be negative")
	v.Check(likes <= maxLikes, "likes", "must not be more than 2147483647")
}

func validateComment(v *common.Validator, text string) {
	v.Check(text != "", "comment", "must be provided")
	v.Check(v.CheckStringLength(text, 0, maxCommentLength), "comment", "must not be more than 1000 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
