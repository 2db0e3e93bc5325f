package account

import (
	"context"
	"errors"
	"log"
	"strings"

	"kebuli-storefront/internal/domain"
	"kebuli-storefront/internal/remote"
	sessionrepo "kebuli-storefront/internal/repository/session"
)

type authAPI interface {
	Login(ctx context.Context, email, password string) (*remote.Credentials, error)
	Register(ctx context.Context, in remote.RegisterInput) (*remote.Credentials, error)
	Logout(ctx context.Context, token string) error
	FetchProfile(ctx context.Context, token string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, token string, in domain.Profile) (*domain.Profile, error)
}

// Service owns the device session lifecycle: credential exchange with the
// upstream auth endpoints plus the cached profile used when upstream is
// unreachable.
type Service struct {
	sessions sessionrepo.Repository
	api      authAPI
	logger   *log.Logger
}

func New(sessions sessionrepo.Repository, api authAPI, logger *log.Logger) *Service {
	return &Service{sessions: sessions, api: api, logger: logger}
}

// Session returns the device's session, or a fresh guest session when none is
// stored yet.
func (s *Service) Session(ctx context.Context, deviceID string) (sessionrepo.Session, error) {
	sess, err := s.sessions.Get(ctx, deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return sessionrepo.Session{DeviceID: deviceID}, nil
		}
		return sessionrepo.Session{}, err
	}
	return *sess, nil
}

// Login exchanges credentials upstream and stores token, role and profile for
// the device in one write.
func (s *Service) Login(ctx context.Context, deviceID, email, password string) (sessionrepo.Session, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return sessionrepo.Session{}, domain.NewValidationError("credentials", "email and password required")
	}
	creds, err := s.api.Login(ctx, email, password)
	if err != nil {
		return sessionrepo.Session{}, err
	}
	if err := s.sessions.SaveCredential(ctx, deviceID, creds.Token, creds.Role, creds.Profile); err != nil {
		return sessionrepo.Session{}, err
	}
	return sessionrepo.Session{
		DeviceID:  deviceID,
		AuthToken: creds.Token,
		Role:      creds.Role,
		Profile:   creds.Profile,
	}, nil
}

// Register creates an account upstream and signs the device in.
func (s *Service) Register(ctx context.Context, deviceID string, in remote.RegisterInput) (sessionrepo.Session, error) {
	creds, err := s.api.Register(ctx, in)
	if err != nil {
		return sessionrepo.Session{}, err
	}
	if err := s.sessions.SaveCredential(ctx, deviceID, creds.Token, creds.Role, creds.Profile); err != nil {
		return sessionrepo.Session{}, err
	}
	return sessionrepo.Session{
		DeviceID:  deviceID,
		AuthToken: creds.Token,
		Role:      creds.Role,
		Profile:   creds.Profile,
	}, nil
}

// Logout invalidates the token upstream on a best-effort basis and clears the
// whole credential atomically so no key survives a partial logout.
func (s *Service) Logout(ctx context.Context, sess sessionrepo.Session) error {
	if sess.Authenticated() {
		if err := s.api.Logout(ctx, sess.AuthToken); err != nil {
			s.logger.Printf("device %s: upstream logout: %v", sess.DeviceID, err)
		}
	}
	return s.sessions.ClearCredential(ctx, sess.DeviceID)
}

// Profile returns the upstream profile, refreshing the device cache. When
// upstream is unreachable the cached copy is served instead.
func (s *Service) Profile(ctx context.Context, sess sessionrepo.Session) (*domain.Profile, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	p, err := s.api.FetchProfile(ctx, sess.AuthToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnreachable) {
			s.logger.Printf("device %s: profile fetch unreachable, serving cached copy", sess.DeviceID)
			cached := sess.Profile
			return &cached, nil
		}
		return nil, err
	}
	if err := s.sessions.SaveProfile(ctx, sess.DeviceID, *p); err != nil {
		s.logger.Printf("device %s: cache profile: %v", sess.DeviceID, err)
	}
	return p, nil
}

// UpdateProfile pushes changes upstream and refreshes the cache on success.
func (s *Service) UpdateProfile(ctx context.Context, sess sessionrepo.Session, in domain.Profile) (*domain.Profile, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	p, err := s.api.UpdateProfile(ctx, sess.AuthToken, in)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SaveProfile(ctx, sess.DeviceID, *p); err != nil {
		s.logger.Printf("device %s: cache profile: %v", sess.DeviceID, err)
	}
	return p, nil
}
