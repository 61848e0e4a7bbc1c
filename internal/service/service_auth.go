package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/utils"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// authService issues and checks the JWT tokens of node operators. Tokens are
// signed with a key from the node configuration; there is no user store.
type authService struct {
	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration
}

func NewAuthService(cfg config.App) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
	}
}

func (a *authService) CreateToken(ctx context.Context, subject string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, subject, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*authService.CreateToken").
			Str("subject", subject).
			Msg("failed to create admin token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (a *authService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	if a.tokenSignKey == "" {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return models.Token{}, ErrTokenIsExpired
	}
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
