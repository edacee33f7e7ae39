package auth

import (
	"context"
	"errors"
)

// LoginTestChecker is a Checker for unit tests, resolving tokens from a plain map.
type LoginTestChecker struct {
	LoggedSessions map[string]int
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]int{},
	}
}

func (tc *LoginTestChecker) GetLoggedUserID(_ context.Context, token string) (int, error) {
	if userID, ok := tc.LoggedSessions[token]; ok {
		return userID, nil
	}
	return 0, errors.New("session not found")
}
