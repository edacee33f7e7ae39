package auth

import (
	"context"
	"errors"
)

// AuthTokenHeader carries the login session token on authenticated requests.
const AuthTokenHeader = "X-WLOG-TOKEN"

var ErrSessionExpired = errors.New("session expired")

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

type Checker interface {
	GetLoggedUserID(ctx context.Context, token string) (int, error)
}
