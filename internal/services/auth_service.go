package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/config"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/repo"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/utils"
)

type AuthService struct {
	users     UserStore
	directory DirectoryStore
	sessions  SessionStore
	cfg       *config.Config
}

type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	Role        int64       `json:"role"`
	User        interface{} `json:"user"`
}

// LoginResult carries the token response plus the refresh-token material
// the handler turns into an httpOnly cookie.
type LoginResult struct {
	TokenResponse
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type VerifyIdentityResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userid"`
}

func NewAuthService(users UserStore, directory DirectoryStore, sessions SessionStore, cfg *config.Config) *AuthService {
	return &AuthService{users: users, directory: directory, sessions: sessions, cfg: cfg}
}

func errInvalidCredentials() error {
	return utils.NewAppError(401, "INVALID_CREDENTIALS", "invalid usercode or password", nil)
}

// errVerificationFailed collapses "no such usercode", "no linked employee"
// and "email mismatch" into one answer so the endpoint cannot be used to
// probe which usercodes exist.
func errVerificationFailed() error {
	return utils.NewAppError(404, "NOT_FOUND", "account verification failed", nil)
}

func (s *AuthService) Login(ctx context.Context, usercode, pass string) (*LoginResult, error) {
	user, err := s.users.GetByUsercode(ctx, usercode)
	if err != nil {
		return nil, errInvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Pass), []byte(pass)); err != nil {
		return nil, errInvalidCredentials()
	}

	// Checked only after the password verified, so a disabled account is
	// indistinguishable from a missing one to an unauthenticated caller.
	if !user.Status {
		return nil, utils.NewAppError(403, "ACCOUNT_DISABLED", "account is disabled, contact an administrator", nil)
	}

	accessToken, _, err := MintToken(user, s.cfg.JWTSecret, s.cfg.JWTExpiry)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not generate token", nil)
	}

	refreshToken := uuid.NewString()
	refreshExpires := time.Now().Add(s.cfg.RefreshTTL)
	if err := s.sessions.Upsert(ctx, user.UserID, refreshToken, refreshExpires); err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not store session", nil)
	}

	// Opportunistic sweep; a failure here must not fail the login.
	_, _ = s.sessions.DeleteExpired(ctx)

	return &LoginResult{
		TokenResponse: TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int64(s.cfg.JWTExpiry.Seconds()),
			Role:        user.Role,
			User: map[string]interface{}{
				"userid":   user.UserID,
				"usercode": user.Usercode,
				"name":     user.Name,
				"role":     user.Role,
			},
		},
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpires,
	}, nil
}

// SignOut drops the session matching the refresh cookie. An unknown or
// absent token is not an error; the client is logged out either way.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if _, err := s.sessions.DeleteByToken(ctx, refreshToken); err != nil {
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not remove session", nil)
	}
	return nil
}

// VerifyIdentity is phase one of password recovery: prove you know the
// usercode and its registered email, and a time-boxed recovery window
// opens for that user.
func (s *AuthService) VerifyIdentity(ctx context.Context, usercode, email string) (*VerifyIdentityResponse, error) {
	user, err := s.users.GetByUsercode(ctx, usercode)
	if err != nil {
		return nil, errVerificationFailed()
	}

	if user.EmployeeID == nil {
		return nil, errVerificationFailed()
	}

	employee, err := s.directory.GetEmployee(ctx, *user.EmployeeID)
	if err != nil {
		return nil, errVerificationFailed()
	}

	registered := strings.ToLower(strings.TrimSpace(employee.Email))
	supplied := strings.ToLower(strings.TrimSpace(email))
	if registered == "" || registered != supplied {
		return nil, errVerificationFailed()
	}

	expiresAt := time.Now().Add(s.cfg.RecoveryTTL)
	if err := s.users.BeginRecovery(ctx, user.UserID, expiresAt); err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not start recovery", nil)
	}

	return &VerifyIdentityResponse{
		Message: "identity verified",
		UserID:  user.UserID,
	}, nil
}

// ResetPassword is phase two: consume the recovery window opened by
// VerifyIdentity. The consume is a single conditional update, so of two
// concurrent attempts exactly one succeeds and the other gets a conflict.
func (s *AuthService) ResetPassword(ctx context.Context, userID int64, newPass, confirmPass string) error {
	if newPass != confirmPass {
		return utils.NewAppError(400, "PASSWORD_MISMATCH", "password confirmation does not match", nil)
	}
	if len(newPass) < s.cfg.PasswordMinLen {
		return utils.NewAppError(400, "VALIDATION_ERROR", fmt.Sprintf("password must be at least %d characters", s.cfg.PasswordMinLen), nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPass), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not update password", nil)
	}

	consumed, err := s.users.ConsumeRecovery(ctx, userID, string(hash))
	if err != nil {
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not update password", nil)
	}
	if !consumed {
		if _, err := s.users.GetByID(ctx, userID); errors.Is(err, repo.ErrNotFound) {
			return utils.NewAppError(404, "NOT_FOUND", "account does not exist", nil)
		}
		return utils.NewAppError(409, "RECOVERY_INVALID", "recovery is expired or already used, verify your identity again", nil)
	}

	// Force a fresh login with the new password everywhere.
	if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not clear sessions", nil)
	}
	return nil
}

// ChangePassword is the in-session variant: the caller is authenticated
// and must present the old password.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPass, newPass, confirmPass string) error {
	if newPass != confirmPass {
		return utils.NewAppError(400, "PASSWORD_MISMATCH", "password confirmation does not match", nil)
	}
	if oldPass == newPass {
		return utils.NewAppError(400, "VALIDATION_ERROR", "new password must differ from the old one", nil)
	}
	if len(newPass) < s.cfg.PasswordMinLen {
		return utils.NewAppError(400, "VALIDATION_ERROR", fmt.Sprintf("password must be at least %d characters", s.cfg.PasswordMinLen), nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return utils.NewAppError(404, "NOT_FOUND", "account does not exist", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Pass), []byte(oldPass)); err != nil {
		return utils.NewAppError(400, "VALIDATION_ERROR", "old password is incorrect", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPass), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not update password", nil)
	}
	if err := s.users.UpdatePassword(ctx, user.UserID, string(hash)); err != nil {
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not update password", nil)
	}

	if err := s.sessions.DeleteByUser(ctx, user.UserID); err != nil {
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not clear sessions", nil)
	}
	return nil
}
