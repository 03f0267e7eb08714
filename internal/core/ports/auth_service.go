package ports

import (
	"context"

	"github.com/hostcraft/platform-api/internal/core/domain"
)

// Identity is the profile returned by the OAuth provider after a successful
// code exchange.
type Identity struct {
	ID        string
	Username  string
	Email     string
	AvatarURL string
}

// OAuthProvider abstracts the external identity provider.
type OAuthProvider interface {
	// AuthURL builds the authorization redirect for the given state.
	AuthURL(state string) string
	// ExchangeIdentity trades the authorization code for the user's profile.
	ExchangeIdentity(ctx context.Context, code string) (*Identity, error)
}

// StateStore holds one-shot OAuth state values between redirect and callback.
type StateStore interface {
	Issue(ctx context.Context, state string) error
	// Consume validates and invalidates the state in one step.
	Consume(ctx context.Context, state string) (bool, error)
}

// AuthService drives the OAuth login flow and session issuance.
type AuthService interface {
	// LoginURL issues a fresh state and returns the provider redirect.
	LoginURL(ctx context.Context) (string, error)
	// HandleCallback verifies state, exchanges the code, upserts the user,
	// and returns a signed session token with the stored role merged in.
	HandleCallback(ctx context.Context, code, state string) (string, *domain.User, error)
}
