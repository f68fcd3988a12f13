package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/linkquarry/linkquarry-backend/pkg/auth"
	"github.com/linkquarry/linkquarry-backend/pkg/auth/session"
	"github.com/linkquarry/linkquarry-backend/pkg/config"
	"github.com/linkquarry/linkquarry-backend/pkg/db/models"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
	pkgerrors "github.com/linkquarry/linkquarry-backend/pkg/errors"
	"github.com/linkquarry/linkquarry-backend/pkg/security"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "linkquarry-test",
	ExpirationMinutes: 15,
}

type stubUserRepo struct {
	user       *models.User
	lastLogins []time.Time
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.user
	return &copied, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogins = append(s.lastLogins, at)
	return nil
}

type stubSessionManager struct {
	generated []string
	rotated   []string
	revoked   []string
	rotateErr error
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	s.rotated = append(s.rotated, oldAccessID)
	newID := "rotated-" + oldAccessID
	return newID, "refresh-" + newID, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func newFixture(t *testing.T, password string) (*stubUserRepo, *stubSessionManager, Service, *models.User) {
	t.Helper()
	accountID := uuid.New()
	user := &models.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		Name:         "Account Owner",
		PasswordHash: mustHashPassword(t, password),
		UserType:     enums.UserTypeAccount,
		AccountID:    &accountID,
	}
	repo := &stubUserRepo{user: user}
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return repo, sessions, svc, user
}

func TestLoginMintsParseableToken(t *testing.T) {
	repo, sessions, svc, user := newFixture(t, "correct horse battery")

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Owner@Example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.UserType != enums.UserTypeAccount {
		t.Fatalf("expected account user type, got %s", claims.UserType)
	}
	if claims.AccountID == nil || *claims.AccountID != *user.AccountID {
		t.Fatalf("expected account id carried in claims")
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti in claims")
	}
	if len(sessions.generated) != 1 || sessions.generated[0] != claims.ID {
		t.Fatalf("expected refresh session keyed by jti, got %v", sessions.generated)
	}
	if resp.RefreshToken != "refresh-"+claims.ID {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
	if len(repo.lastLogins) != 1 {
		t.Fatalf("expected last login recorded once, got %d", len(repo.lastLogins))
	}
	if resp.User.Email != user.Email {
		t.Fatalf("expected user payload in response")
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	_, sessions, svc, _ := newFixture(t, "correct horse battery")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if typed.Message() != "invalid credentials" {
		t.Fatalf("expected generic credentials message, got %q", typed.Message())
	}
	if len(sessions.generated) != 0 {
		t.Fatalf("expected no session for failed login")
	}
}

func TestLoginUnknownEmailUnauthorized(t *testing.T) {
	_, _, svc, _ := newFixture(t, "correct horse battery")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if typed.Message() != "invalid credentials" {
		t.Fatalf("unknown email must not be distinguishable, got %q", typed.Message())
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	_, sessions, svc, user := newFixture(t, "correct horse battery")

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	oldClaims, err := pkgAuth.ParseAccessToken(testJWTConfig, login.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(sessions.rotated) != 1 || sessions.rotated[0] != oldClaims.ID {
		t.Fatalf("expected rotation keyed by old jti, got %v", sessions.rotated)
	}

	newClaims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if newClaims.ID == oldClaims.ID {
		t.Fatalf("expected a fresh jti after rotation")
	}
	if newClaims.UserID != user.ID || newClaims.UserType != user.UserType {
		t.Fatalf("expected identity payload preserved across refresh")
	}
}

func TestRefreshInvalidRefreshTokenUnauthorized(t *testing.T) {
	_, sessions, svc, _ := newFixture(t, "correct horse battery")
	sessions.rotateErr = session.ErrInvalidRefreshToken

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: "stolen-or-stale",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestRefreshGarbageTokenUnauthorized(t *testing.T) {
	_, _, svc, _ := newFixture(t, "correct horse battery")

	_, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	_, sessions, svc, _ := newFixture(t, "correct horse battery")

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, login.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if err := svc.Logout(context.Background(), LogoutRequest{AccessToken: login.AccessToken}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != claims.ID {
		t.Fatalf("expected revocation keyed by jti, got %v", sessions.revoked)
	}
}
