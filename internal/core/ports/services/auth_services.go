package services

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// GoogleOAuthSvcFacade wraps the Google authorization-code exchange and ID
// token validation used by the OAuth login flow.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken exchanges a frontend authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken verifies an ID token against the configured client id.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)
}
