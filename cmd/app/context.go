package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/userservice"
)

type contextKey string

const (
	userContextKey       = contextKey("user")
	tokenErrorContextKey = contextKey("token_error")
)

func (app *application) createUserContext(r *http.Request, user *userservice.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

// getUserContext falls back to the anonymous user when authenticate did not run.
func (app *application) getUserContext(r *http.Request) *userservice.User {
	user, ok := r.Context().Value(userContextKey).(*userservice.User)
	if !ok {
		return &userservice.AnonymousUser
	}
	return user
}

// createTokenErrorContext remembers why a presented token was rejected.
func (app *application) createTokenErrorContext(r *http.Request, err error) *http.Request {
	ctx := context.WithValue(r.Context(), tokenErrorContextKey, err)
	return r.WithContext(ctx)
}

func (app *application) getTokenErrorContext(r *http.Request) error {
	err, _ := r.Context().Value(tokenErrorContextKey).(error)
	return err
}
