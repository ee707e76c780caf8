package userservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	AnonymousUser = User{}
)

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	Version   int       `json:"-"`
}

// Password holds only the bcrypt hash; the plaintext is never kept.
type Password struct {
	hash []byte
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthToken is returned by a successful login.
type AuthToken struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type userStore interface {
	insert(ctx context.Context, u *User) error
	get(ctx context.Context, id int) (*User, error)
	getByUsername(ctx context.Context, username string) (*User, error)
	getAll(ctx context.Context) ([]User, error)
}

type UserModel struct {
	db *sql.DB
}

type UserService struct {
	m      userStore
	mb     common.MessageProducer
	c      *common.Cache
	tokens *TokenManager
}
