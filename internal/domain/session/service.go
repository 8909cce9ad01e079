package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/repository"
)

// Options configures a Service. Zero values select defaults.
type Options struct {
	TTL      time.Duration
	Activity ActivityRecorder
	Now      func() time.Time
}

// Service owns the token lifecycle. It is the single source of truth for
// whether the console is signed in.
type Service struct {
	creds    CredentialRepository
	auth     Authenticator
	ttl      time.Duration
	activity ActivityRecorder
	now      func() time.Time
	logger   *slog.Logger

	mu          sync.Mutex
	nextSub     int
	subscribers map[int]func(bool)
}

// NewService creates a new session service.
func NewService(creds CredentialRepository, auth Authenticator, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		creds:       creds,
		auth:        auth,
		ttl:         opts.TTL,
		activity:    opts.Activity,
		now:         opts.Now,
		logger:      logger,
		subscribers: make(map[int]func(bool)),
	}
}

// Login exchanges email and password for a token and stores it.
func (s *Service) Login(ctx context.Context, email, password string) (*Credential, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: please enter your email", ErrInvalidInput)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: the email is not a valid email", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: please enter your password", ErrInvalidInput)
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	if token == "" {
		return nil, ErrEmptyToken
	}

	now := s.now().UTC()
	cred := &Credential{
		Key:       TokenKey,
		Token:     token,
		Account:   email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.creds.Put(ctx, cred); err != nil {
		return nil, fmt.Errorf("storing token: %w", err)
	}

	s.logger.Info("signed in", "account", email, "expires_at", cred.ExpiresAt)
	s.record(ctx, activity.TypeSignedIn, "signed in as "+email)
	s.notify(true)
	return cred, nil
}

// Logout removes the stored token. Logging out without a token succeeds.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.creds.Delete(ctx, TokenKey); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("removing token: %w", err)
	}
	s.logger.Info("signed out")
	s.record(ctx, activity.TypeSignedOut, "signed out")
	s.notify(false)
	return nil
}

// Token returns the stored token, or "" when none is valid. An expired token
// is deleted.
func (s *Service) Token(ctx context.Context) (string, error) {
	cred, err := s.current(ctx)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return "", nil
		}
		return "", err
	}
	return cred.Token, nil
}

// Require returns the current credential or ErrNotAuthenticated.
func (s *Service) Require(ctx context.Context) (*Credential, error) {
	return s.current(ctx)
}

// Authenticated reports whether a valid token is stored.
func (s *Service) Authenticated(ctx context.Context) bool {
	_, err := s.current(ctx)
	return err == nil
}

// Status describes the current session.
func (s *Service) Status(ctx context.Context) (Status, error) {
	cred, err := s.current(ctx)
	if errors.Is(err, ErrNotAuthenticated) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, err
	}
	expires := cred.ExpiresAt
	return Status{Authenticated: true, Account: cred.Account, ExpiresAt: &expires}, nil
}

// Subscribe registers fn to receive authentication changes. The returned
// func removes the subscription.
func (s *Service) Subscribe(fn func(authenticated bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Service) current(ctx context.Context) (*Credential, error) {
	cred, err := s.creds.Get(ctx, TokenKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("loading token: %w", err)
	}
	if cred.Expired(s.now()) {
		if err := s.creds.Delete(ctx, TokenKey); err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("expired token cleanup failed", "error", err)
		}
		s.logger.Info("token expired", "account", cred.Account, "expired_at", cred.ExpiresAt)
		s.notify(false)
		return nil, ErrNotAuthenticated
	}
	return cred, nil
}

func (s *Service) record(ctx context.Context, typ activity.ActivityType, summary string) {
	if s.activity != nil {
		s.activity.Record(ctx, typ, "", summary)
	}
}

func (s *Service) notify(authenticated bool) {
	s.mu.Lock()
	fns := make([]func(bool), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(authenticated)
	}
}
