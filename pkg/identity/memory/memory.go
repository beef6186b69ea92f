// Package memory provides an in-process identity service for local
// development, demos and tests. Accounts live in a map guarded by a mutex;
// passwords are bcrypt hashed and sessions are HS256 signed JWTs.
package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-freedom/pkg/identity"
)

// DefaultSessionTTL matches a one day browser session.
const DefaultSessionTTL = 24 * time.Hour

const issuer = "go-freedom"

type account struct {
	identity identity.Identity
	hash     []byte
}

type claims struct {
	jwt.RegisteredClaims
}

// Service implements identity.Service in memory.
type Service struct {
	mu       sync.RWMutex
	accounts map[string]account
	byID     map[string]string

	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
	logger *slog.Logger
}

var _ identity.Service = (*Service)(nil)

// Option configures the service.
type Option func(*Service)

// WithSecret sets the HMAC key used to sign session tokens.
func WithSecret(secret string) Option {
	return func(s *Service) {
		if secret != "" {
			s.secret = []byte(secret)
		}
	}
}

// WithSessionTTL sets how long issued sessions stay valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds an empty service. Without WithSecret a random key is generated,
// so tokens do not survive a restart.
func New(options ...Option) *Service {
	s := &Service{
		accounts: make(map[string]account),
		byID:     make(map[string]string),
		secret:   []byte(uuid.NewString()),
		ttl:      DefaultSessionTTL,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// CreateAccount stores a new account keyed by the normalised email.
func (s *Service) CreateAccount(ctx context.Context, profile identity.Profile) (identity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return identity.Identity{}, err
	}
	email := normalizeEmail(profile.Email)
	if email == "" {
		return identity.Identity{}, identity.NewError(identity.ErrUnavailable, "Email is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(profile.Password), s.cost)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("memory: hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[email]; exists {
		s.logger.Debug("memory: duplicate account", "email", email)
		return identity.Identity{}, identity.NewError(identity.ErrDuplicateAccount, "An account with this email already exists.")
	}

	user := identity.Identity{
		ID:          uuid.NewString(),
		Email:       email,
		FirstName:   strings.TrimSpace(profile.FirstName),
		LastName:    strings.TrimSpace(profile.LastName),
		Address1:    strings.TrimSpace(profile.Address1),
		City:        strings.TrimSpace(profile.City),
		State:       strings.TrimSpace(profile.State),
		PostalCode:  strings.TrimSpace(profile.PostalCode),
		DateOfBirth: strings.TrimSpace(profile.DateOfBirth),
		CreatedAt:   s.now().UTC(),
	}
	s.accounts[email] = account{identity: user, hash: hash}
	s.byID[user.ID] = email
	s.logger.Debug("memory: account created", "user_id", user.ID)
	return user, nil
}

// CheckCredentials verifies the password and issues a signed session token.
func (s *Service) CheckCredentials(ctx context.Context, email, password string) (identity.Session, error) {
	if err := ctx.Err(); err != nil {
		return identity.Session{}, err
	}

	s.mu.RLock()
	acct, ok := s.accounts[normalizeEmail(email)]
	s.mu.RUnlock()
	if !ok {
		return identity.Session{}, identity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return identity.Session{}, identity.ErrInvalidCredentials
	}

	now := s.now()
	expires := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   acct.identity.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return identity.Session{}, fmt.Errorf("memory: sign session: %w", err)
	}
	return identity.Session{
		Token:     signed,
		UserID:    acct.identity.ID,
		ExpiresAt: expires.Truncate(time.Second).UTC(),
	}, nil
}

// ErrInvalidSession is returned by ParseSession for malformed, forged or
// expired tokens.
var ErrInvalidSession = errors.New("memory: invalid session")

// ParseSession validates a token issued by CheckCredentials.
func (s *Service) ParseSession(token string) (identity.Session, error) {
	parsed := &claims{}
	_, err := jwt.ParseWithClaims(token, parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return identity.Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	session := identity.Session{Token: token, UserID: parsed.Subject}
	if parsed.ExpiresAt != nil {
		session.ExpiresAt = parsed.ExpiresAt.Time.UTC()
	}
	return session, nil
}

// Lookup returns the account for a user id.
func (s *Service) Lookup(userID string) (identity.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.byID[userID]
	if !ok {
		return identity.Identity{}, false
	}
	return s.accounts[email].identity, true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
