// pkg/session/session.go

// Package session carries the caller identity explicitly through the service.
package session

import (
	"context"
	"errors"
	"strings"
)

const DefaultLocale = "en-US"

var ErrNoUser = errors.New("no user in session")

// Session identifies who an operation runs for. It is resolved once per
// request and handed to every store and export call.
type Session struct {
	UserID string
	Locale string
}

func New(userID, locale string) (Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Session{}, ErrNoUser
	}
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	return Session{UserID: userID, Locale: locale}, nil
}

type contextKey string

const sessionKey = contextKey("Session")

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}
