package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lmoralesdev/storefront-gateway/internal/errors"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	"github.com/lmoralesdev/storefront-gateway/internal/utils/response"
)

type authContextKey string

const AdminContextKey = authContextKey("admin")

// AuthMiddleware guards the admin-console routes. Tokens are issued out of
// band and verified against a shared HMAC key.
type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))

			return
		}

		// Token is of format: "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))

			return
		}

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))

				return nil, errors.BadRequestError("unexpected signing method")
			}

			return m.jwtKey, nil
		})

		if err != nil {
			logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))

			return
		}

		if !token.Valid {
			logger.Warn("Invalid token")
			response.Error(w, errors.UnauthorizedError("Invalid token"))

			return
		}

		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
			logger.Warn("Expired token", slog.String("subject", claims.Subject))
			response.Error(w, errors.UnauthorizedError("Token expired"))

			return
		}

		ctx := context.WithValue(r.Context(), AdminContextKey, claims)

		requestScopedLogger := logger.With(slog.String("admin", claims.Subject))
		ctx = context.WithValue(ctx, loggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
