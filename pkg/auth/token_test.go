package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/linkquarry/linkquarry-backend/pkg/config"
	"github.com/linkquarry/linkquarry-backend/pkg/enums"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "linkquarry",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testConfig()
	now := time.Now().UTC()
	userID := uuid.New()
	accountID := uuid.New()

	payload := AccessTokenPayload{
		UserID:    userID,
		UserType:  enums.UserTypeAccount,
		AccountID: &accountID,
		JTI:       "session-key-1",
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.UserType != enums.UserTypeAccount {
		t.Fatalf("unexpected user type %s", claims.UserType)
	}
	if claims.AccountID == nil || *claims.AccountID != accountID {
		t.Fatalf("account id not preserved")
	}
	if claims.ID != "session-key-1" {
		t.Fatalf("expected jti session-key-1, got %q", claims.ID)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestMintAccessTokenGeneratesJTIWhenEmpty(t *testing.T) {
	cfg := testConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:   uuid.New(),
		UserType: enums.UserTypeInternal,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.ID == "" {
		t.Fatalf("expected a generated jti")
	}
}

func TestMintAccessTokenRequiresScopeForUserType(t *testing.T) {
	cfg := testConfig()
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:   uuid.New(),
		UserType: enums.UserTypeAccount,
	}); err == nil {
		t.Fatalf("expected error for account user without account id")
	}
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:   uuid.New(),
		UserType: enums.UserTypePublisher,
	}); err == nil {
		t.Fatalf("expected error for publisher user without publisher id")
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := testConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:   uuid.New(),
		UserType: enums.UserTypeInternal,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	otherCfg := cfg
	otherCfg.Secret = "different-secret"
	if _, err := ParseAccessToken(otherCfg, token); err == nil {
		t.Fatalf("expected signature validation failure")
	}
}

func TestParseAccessTokenAllowExpired(t *testing.T) {
	cfg := testConfig()
	past := time.Now().Add(-2 * time.Hour)
	token, err := MintAccessToken(cfg, past, AccessTokenPayload{
		UserID:   uuid.New(),
		UserType: enums.UserTypeInternal,
		JTI:      "expired-session",
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatalf("expected expired token to fail strict parse")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("expected expired token to parse leniently: %v", err)
	}
	if claims.ID != "expired-session" {
		t.Fatalf("expected jti preserved, got %q", claims.ID)
	}
}
