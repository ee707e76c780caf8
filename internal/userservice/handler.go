package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache, tokens *TokenManager) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		c:      c,
		tokens: tokens,
	}
}

// CreateUser creates a new user account and publishes a user.created event.
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	// the password is checked before anything else is looked at
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	v := common.NewValidator()
	validateUsername(v, req.Username)
	validateName(v, req.Name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: req.Username,
		Name:     req.Name,
	}

	if err := u.Password.set(req.Password); err != nil {
		return nil, err
	}

	if err := s.m.insert(ctx, &u); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyUsers)

	event := common.UserCreatedEvent{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
	}

	if err := common.PublishJSON(ctx, s.mb, event, common.UserCreatedKey, common.UserExchange); err != nil {
		return nil, fmt.Errorf("user %d created: %w", u.ID, err)
	}

	return &u, nil
}

// LoginUser checks the credentials and issues a signed access token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.m.getByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &AuthToken{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// GetUserByToken resolves the user a bearer token was issued to. Tokens of users that no
// longer exist are invalid.
func (s *UserService) GetUserByToken(ctx context.Context, token string) (*User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, found := s.c.Get(common.CacheKeyUser(id)); found {
		if u, ok := cached.(User); ok {
			return &u, nil
		}
	}

	gen := s.c.Generation()
	u, err := s.m.get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.SetIfCurrent(gen, common.CacheKeyUser(id), *u)

	return u, nil
}

// GetUsers returns every user ordered by id.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	if cached, found := s.c.Get(common.CacheKeyUsers); found {
		if users, ok := cached.([]User); ok {
			return users, nil
		}
	}

	gen := s.c.Generation()
	users, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	s.c.SetIfCurrent(gen, common.CacheKeyUsers, users)

	return users, nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
