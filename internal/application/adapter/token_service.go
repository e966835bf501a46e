package adapter

import "context"

// TokenClaims contains the validated claims from an access token.
type TokenClaims struct {
	UserID string
}

// TokenService defines the interface for bearer-token operations.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for a user.
	GenerateAccessToken(userID string) (string, error)

	// ValidateAccessToken validates a token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
