package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"kebuli-storefront/internal/domain"
	"kebuli-storefront/internal/remote"
	sessionrepo "kebuli-storefront/internal/repository/session"
)

type memorySessions struct {
	sessions map[string]sessionrepo.Session
	cleared  []string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string]sessionrepo.Session)}
}

func (r *memorySessions) Get(_ context.Context, deviceID string) (*sessionrepo.Session, error) {
	sess, ok := r.sessions[deviceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := sess
	return &clone, nil
}

func (r *memorySessions) SaveCredential(_ context.Context, deviceID, token, role string, profile domain.Profile) error {
	r.sessions[deviceID] = sessionrepo.Session{
		DeviceID:  deviceID,
		AuthToken: token,
		Role:      role,
		Profile:   profile,
	}
	return nil
}

func (r *memorySessions) SaveProfile(_ context.Context, deviceID string, profile domain.Profile) error {
	sess := r.sessions[deviceID]
	sess.DeviceID = deviceID
	sess.Profile = profile
	r.sessions[deviceID] = sess
	return nil
}

func (r *memorySessions) ClearCredential(_ context.Context, deviceID string) error {
	r.cleared = append(r.cleared, deviceID)
	r.sessions[deviceID] = sessionrepo.Session{DeviceID: deviceID}
	return nil
}

type stubAuthAPI struct {
	creds       *remote.Credentials
	loginErr    error
	loginCalls  int
	logoutErr   error
	logoutCalls int
	profile     *domain.Profile
	profileErr  error
}

func (s *stubAuthAPI) Login(_ context.Context, _, _ string) (*remote.Credentials, error) {
	s.loginCalls++
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.creds, nil
}

func (s *stubAuthAPI) Register(_ context.Context, _ remote.RegisterInput) (*remote.Credentials, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.creds, nil
}

func (s *stubAuthAPI) Logout(_ context.Context, _ string) error {
	s.logoutCalls++
	return s.logoutErr
}

func (s *stubAuthAPI) FetchProfile(_ context.Context, _ string) (*domain.Profile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profile, nil
}

func (s *stubAuthAPI) UpdateProfile(_ context.Context, _ string, in domain.Profile) (*domain.Profile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	clone := in
	return &clone, nil
}

func newAccountFixture() (*Service, *memorySessions, *stubAuthAPI) {
	sessions := newMemorySessions()
	api := &stubAuthAPI{
		creds: &remote.Credentials{
			Token:   "tok-1",
			Role:    "customer",
			Profile: domain.Profile{FirstName: "Ana", Email: "ana@example.com"},
		},
	}
	svc := New(sessions, api, log.New(io.Discard, "", 0))
	return svc, sessions, api
}

func TestSessionDefaultsToGuest(t *testing.T) {
	svc, _, _ := newAccountFixture()

	sess, err := svc.Session(context.Background(), "dev-1")
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if sess.DeviceID != "dev-1" || sess.Authenticated() {
		t.Fatalf("expected fresh guest session, got %+v", sess)
	}
}

func TestLoginStoresCredential(t *testing.T) {
	svc, sessions, _ := newAccountFixture()

	sess, err := svc.Login(context.Background(), "dev-1", "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.AuthToken != "tok-1" || sess.Role != "customer" {
		t.Fatalf("unexpected session %+v", sess)
	}
	stored := sessions.sessions["dev-1"]
	if stored.AuthToken != "tok-1" || stored.Profile.FirstName != "Ana" {
		t.Fatalf("credential not persisted: %+v", stored)
	}
}

func TestLoginRejectsEmptyInput(t *testing.T) {
	svc, _, api := newAccountFixture()

	_, err := svc.Login(context.Background(), "dev-1", " ", "secret")
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if api.loginCalls != 0 {
		t.Fatalf("empty input must not reach upstream")
	}
}

func TestLogoutClearsCredentialDespiteUpstreamError(t *testing.T) {
	svc, sessions, api := newAccountFixture()
	ctx := context.Background()
	api.logoutErr = errors.New("upstream down")

	sess, err := svc.Login(ctx, "dev-1", "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if api.logoutCalls != 1 {
		t.Fatalf("upstream logout not attempted")
	}
	if len(sessions.cleared) != 1 || sessions.sessions["dev-1"].Authenticated() {
		t.Fatalf("credential survived logout: %+v", sessions.sessions["dev-1"])
	}
}

func TestLogoutGuestSkipsUpstream(t *testing.T) {
	svc, sessions, api := newAccountFixture()

	if err := svc.Logout(context.Background(), sessionrepo.Session{DeviceID: "dev-1"}); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if api.logoutCalls != 0 {
		t.Fatalf("guest logout must not call upstream")
	}
	if len(sessions.cleared) != 1 {
		t.Fatalf("local state should still be cleared")
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	svc, _, _ := newAccountFixture()
	_, err := svc.Profile(context.Background(), sessionrepo.Session{DeviceID: "dev-1"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestProfileRefreshesCache(t *testing.T) {
	svc, sessions, api := newAccountFixture()
	api.profile = &domain.Profile{FirstName: "Ana", LastName: "Sari"}
	sess := sessionrepo.Session{DeviceID: "dev-1", AuthToken: "tok-1"}

	p, err := svc.Profile(context.Background(), sess)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.LastName != "Sari" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if sessions.sessions["dev-1"].Profile.LastName != "Sari" {
		t.Fatalf("cache not refreshed: %+v", sessions.sessions["dev-1"])
	}
}

func TestProfileServesCacheWhenUnreachable(t *testing.T) {
	svc, _, api := newAccountFixture()
	api.profileErr = fmt.Errorf("%w: connection refused", domain.ErrUnreachable)
	sess := sessionrepo.Session{
		DeviceID:  "dev-1",
		AuthToken: "tok-1",
		Profile:   domain.Profile{FirstName: "Ana"},
	}

	p, err := svc.Profile(context.Background(), sess)
	if err != nil {
		t.Fatalf("expected cached fallback, got %v", err)
	}
	if p.FirstName != "Ana" {
		t.Fatalf("unexpected cached profile %+v", p)
	}
}

func TestProfileOtherErrorsSurface(t *testing.T) {
	svc, _, api := newAccountFixture()
	api.profileErr = domain.ErrUnauthorized
	sess := sessionrepo.Session{DeviceID: "dev-1", AuthToken: "tok-1"}

	if _, err := svc.Profile(context.Background(), sess); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized to surface, got %v", err)
	}
}
