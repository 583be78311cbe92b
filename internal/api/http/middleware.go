package http

import (
	"context"
	"net/http"
	"strings"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "userID"

// requireRole validates the bearer token and checks the caller holds one of
// the allowed roles. Admins pass every guard.
func (s *Server) requireRole(next http.HandlerFunc, roles ...domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid authorization header"})
			return
		}

		claims, err := s.tokens.ValidateToken(parts[1])
		if err != nil {
			if err == security.ErrExpiredToken {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "token has expired"})
				return
			}
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		allowed := claims.Role == domain.RoleAdmin
		for _, role := range roles {
			if claims.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			logger.Debug("Role check failed", "user_id", claims.UserID, "role", claims.Role, "path", r.URL.Path)
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next(w, r.WithContext(ctx))
	}
}

func userIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}
