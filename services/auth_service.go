package services

import (
	"context"
	"fmt"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"jamaah_server/models"
	"jamaah_server/utils"
)

// AuthService resolves the caller's identity from a bearer token. Every
// protected route goes through Verify before touching any data.
type AuthService struct {
	Provider AuthProvider
	// JWTSecret enables local HS256 verification; when empty the token is
	// exchanged with the provider on every call.
	JWTSecret []byte
	Log       *zap.SugaredLogger
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verify extracts the bearer token from the Authorization header and resolves
// the authenticated identity. Any failure maps to ErrUnauthorized; upstream
// detail is logged, never returned.
func (s *AuthService) Verify(ctx context.Context, authorizationHeader string) (*models.AuthUser, error) {
	token, ok := bearerToken(authorizationHeader)
	if !ok {
		return nil, utils.ErrUnauthorized
	}

	if len(s.JWTSecret) > 0 {
		user, err := s.verifyLocal(token)
		if err != nil {
			s.Log.Debugw("token rejected", "error", err)
			return nil, utils.ErrUnauthorized
		}
		return user, nil
	}

	user, err := s.Provider.GetUserByToken(ctx, token)
	if err != nil {
		s.Log.Debugw("provider rejected token", "error", err)
		return nil, utils.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) verifyLocal(token string) (*models.AuthUser, error) {
	claims := accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return nil, fmt.Errorf("token subject missing")
	}
	return &models.AuthUser{ID: subject, Email: claims.Email}, nil
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
