package service

import (
	"context"
	"testing"

	"github.com/AniruthXI/HelpDeskTicket/internal/config"
	"github.com/AniruthXI/HelpDeskTicket/internal/events"
)

func newAuthFixture() (*AuthService, *fakeUserRepo, *recordingDispatcher) {
	users := newFakeUserRepo()
	dispatcher := &recordingDispatcher{}
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   15,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4,
		},
	}
	return NewAuthService(cfg, users, dispatcher), users, dispatcher
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token on registration")
	}
	if user.Role != "user" {
		t.Errorf("Role = %q, want user", user.Role)
	}
	if !user.IsActive {
		t.Error("new account not active")
	}
	if user.PasswordHash == "secret1" {
		t.Error("password stored in plaintext")
	}

	loggedIn, token, _, err := svc.Login(ctx, "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID || token == "" {
		t.Fatal("login did not return the registered account")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("claims.UserID = %q, want %q", claims.UserID, user.ID)
	}
}

func TestRegisterDuplicateConflict(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, "alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, _, _, err := svc.Register(ctx, "alice", "other@example.com", "secret1")
	requireHTTPStatus(t, err, 409)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, _, _, err := svc.Register(context.Background(), "a", "nope", "123")
	requireHTTPStatus(t, err, 400)
}

func TestLoginFailures(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, _, err = svc.Login(ctx, "unknown@example.com", "secret1")
	requireHTTPStatus(t, err, 401)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	requireHTTPStatus(t, err, 401)

	suspended := users.users[user.ID]
	suspended.IsActive = false
	users.users[user.ID] = suspended
	_, _, _, err = svc.Login(ctx, "alice@example.com", "secret1")
	requireHTTPStatus(t, err, 403)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, users, dispatcher := newAuthFixture()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "alice@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	event := dispatcher.lastOfType(events.EventPasswordResetRequested)
	if event == nil {
		t.Fatal("expected password_reset_requested event")
	}
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok || payload.ResetToken == "" {
		t.Fatalf("unexpected payload %+v", event.Payload)
	}

	if err := svc.ResetPassword(ctx, payload.ResetToken, "newsecret"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	stored := users.users[user.ID]
	if stored.ResetPasswordToken != nil {
		t.Error("reset token not cleared after use")
	}

	if _, _, _, err := svc.Login(ctx, "alice@example.com", "newsecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	_, _, _, err = svc.Login(ctx, "alice@example.com", "secret1")
	requireHTTPStatus(t, err, 401)

	// A consumed token cannot be replayed.
	err = svc.ResetPassword(ctx, payload.ResetToken, "another1")
	requireHTTPStatus(t, err, 400)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	requireHTTPStatus(t, err, 404)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	newName := "alice2"
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Username: &newName})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Username != "alice2" {
		t.Errorf("Username = %q, want alice2", updated.Username)
	}
	if updated.Email != "alice@example.com" {
		t.Errorf("Email changed to %q by partial update", updated.Email)
	}

	badEmail := "nope"
	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Email: &badEmail})
	requireHTTPStatus(t, err, 400)

	_, err = svc.UpdateProfile(ctx, "no-such-user", ProfileUpdateInput{Username: &newName})
	requireHTTPStatus(t, err, 404)
}
