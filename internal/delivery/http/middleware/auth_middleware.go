package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"blood-network-backend/pkg/jwt"
	"blood-network-backend/pkg/response"

	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	LIDKey      contextKey = "lid"
	HospitalKey contextKey = "hospital"
	CityKey     contextKey = "city"
	TokenIDKey  contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Check if token exists in Redis (not revoked)
		tokenKey := fmt.Sprintf("access_token:%s:%s", claims.LID, claims.TokenID)
		exists, err := m.redisClient.Exists(r.Context(), tokenKey).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), LIDKey, claims.LID)
		ctx = context.WithValue(ctx, HospitalKey, claims.Hospital)
		ctx = context.WithValue(ctx, CityKey, claims.City)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLIDFromContext extracts the authenticated hospital's lid from context.
func GetLIDFromContext(ctx context.Context) (string, bool) {
	lid, ok := ctx.Value(LIDKey).(string)
	return lid, ok
}

// GetHospitalFromContext extracts the authenticated hospital name from context.
func GetHospitalFromContext(ctx context.Context) (string, bool) {
	hospital, ok := ctx.Value(HospitalKey).(string)
	return hospital, ok
}

// GetTokenIDFromContext extracts the access token ID from context.
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
