// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// tokenValidator matches idtoken.Validate.
type tokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// AuthServiceImpl implements service.OAuthAuthService for Google
type AuthServiceImpl struct {
	clientID string
	validate tokenValidator
	logger   *slog.Logger
}

// NewAuthService creates a new Google AuthService
func NewAuthService(cfg *config.Config, logger *slog.Logger) service.OAuthAuthService {
	clientID := ""
	if cfg.GoogleOAuth != nil {
		clientID = cfg.GoogleOAuth.ClientID
	}

	return &AuthServiceImpl{
		clientID: clientID,
		validate: idtoken.Validate,
		logger:   logger,
	}
}

// VerifyIDToken checks signature, audience and expiry through Google's public keys.
func (s *AuthServiceImpl) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	if s.clientID == "" {
		return nil, errors.New("google sign-in is not configured")
	}

	payload, err := s.validate(ctx, idToken, s.clientID)
	if err != nil {
		s.logger.WarnContext(ctx, "Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "token verification failed")
	}

	user := payloadToUser(payload)
	if !user.EmailVerified {
		return nil, errors.New("email not verified")
	}

	s.logger.InfoContext(ctx, "Google ID token verified",
		slog.String("sub", user.ID),
		slog.String("email", user.Email))

	return user, nil
}

// GetProvider returns the OAuth provider type
func (s *AuthServiceImpl) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

func payloadToUser(payload *idtoken.Payload) *service.OAuthUser {
	claim := func(name string) string {
		value, _ := payload.Claims[name].(string)

		return value
	}
	verified, _ := payload.Claims["email_verified"].(bool)

	return &service.OAuthUser{
		ID:            payload.Subject,
		Email:         claim("email"),
		Name:          claim("name"),
		Provider:      entity.ProviderTypeGoogle,
		AvatarURL:     claim("picture"),
		EmailVerified: verified,
		Locale:        claim("locale"),
		ExtraData: map[string]any{
			"given_name":  claim("given_name"),
			"family_name": claim("family_name"),
		},
	}
}
