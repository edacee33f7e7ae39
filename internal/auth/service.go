package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Arashi20/Workout-Logging-App/internal/users"
	"github.com/Arashi20/Workout-Logging-App/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "wlog-service-session||"
	tokensSetKey     = "wlog-service-sessions"
)

var ErrWrongCredentials = errors.New("wrong credentials")

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type usersGetter interface {
	GetByUsername(ctx context.Context, username string) (*users.User, error)
}

type Service struct {
	redisClient *redis.Client
	usersRepo   usersGetter
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(usersRepo usersGetter, ttl time.Duration, redisClient *redis.Client) *Service {
	return &Service{
		redisClient:    redisClient,
		usersRepo:      usersRepo,
		ttl:            ttl,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login checks the credentials against the users store and, when they match,
// creates a new login session and returns its token together with the user.
func (s *Service) Login(ctx context.Context, credentials Credentials, createdAt time.Time) (string, *users.User, error) {
	user, err := s.usersRepo.GetByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return "", nil, ErrWrongCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(credentials.Password, user.PasswordHash) {
		return "", nil, ErrWrongCredentials
	}

	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", nil, err
	}

	sessionKey := sessionKeyPrefix + token
	sessionVal := sessionValue(user.ID, createdAt)
	if err := s.redisClient.Set(ctx, sessionKey, sessionVal, 0).Err(); err != nil {
		return "", nil, err
	}

	// add token to the set of sessions, so they can be scanned and cleaned
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := s.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		return false, err
	}

	if _, _, err := parseSessionValue(cmd.Val()); err != nil {
		return false, err
	}

	if err := s.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return false, err
	}

	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return true, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *Service) ScanAndClean(ctx context.Context) {
	cmd := s.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Warnln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Warnf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		sessionKey := sessionKeyPrefix + token
		cmd := s.redisClient.Get(ctx, sessionKey)
		if err := cmd.Err(); err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		_, createdAt, err := parseSessionValue(cmd.Val())
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		if time.Since(createdAt) > s.ttl {
			log.Warnf("=>\twill clean the session with token: %s", token)
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		sessionKey := sessionKeyPrefix + token
		if err := s.redisClient.Del(ctx, sessionKey).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
		if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
	}
}

// session value format: <user id>:<created at unix>
func sessionValue(userID int, createdAt time.Time) string {
	return fmt.Sprintf("%d:%d", userID, createdAt.Unix())
}

func parseSessionValue(val string) (userID int, createdAt time.Time, err error) {
	parts := strings.SplitN(val, ":", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, fmt.Errorf("malformed session value: %s", val)
	}

	userID, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed session user id: %w", err)
	}

	createdAtUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed session timestamp: %w", err)
	}

	return userID, time.Unix(createdAtUnix, 0), nil
}
