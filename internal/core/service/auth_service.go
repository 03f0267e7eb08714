package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// AuthService drives the OAuth authorization-code flow and issues session
// tokens. The provider owns identity; the local users collection owns role
// and status, which are merged into the token at login.
type AuthService struct {
	provider  ports.OAuthProvider
	states    ports.StateStore
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(
	provider ports.OAuthProvider,
	states ports.StateStore,
	users ports.UserRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		provider:  provider,
		states:    states,
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// LoginURL issues a one-shot state value and builds the provider redirect.
func (s *AuthService) LoginURL(ctx context.Context) (string, error) {
	state, err := randomState()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	if err := s.states.Issue(ctx, state); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}
	return s.provider.AuthURL(state), nil
}

// HandleCallback completes the flow: state check, code exchange, user upsert,
// token issuance. Banned accounts authenticate but get no session.
func (s *AuthService) HandleCallback(ctx context.Context, code, state string) (string, *domain.User, error) {
	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return "", nil, fmt.Errorf("consume state: %w", err)
	}
	if !ok {
		return "", nil, domain.ErrInvalidSession
	}

	identity, err := s.provider.ExchangeIdentity(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("exchange code: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Upsert(ctx, &domain.User{
		ID:        identity.ID,
		Username:  identity.Username,
		Email:     identity.Email,
		AvatarURL: identity.AvatarURL,
		Role:      domain.RoleUser,
		Status:    domain.UserActive,
		CreatedAt: now,
	})
	if err != nil {
		return "", nil, fmt.Errorf("upsert user: %w", err)
	}

	if user.Banned() {
		s.logger.Warn().Str("user_id", user.ID).Msg("banned user attempted login")
		return "", nil, domain.ErrUserBanned
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).
		Str("role", string(user.Role)).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
