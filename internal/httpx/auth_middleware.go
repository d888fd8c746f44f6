package httpx

import (
	"net/http"
	"strings"

	"mylib/internal/auth"
)

func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid bearer token")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid bearer token")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid bearer token")
				return
			}

			ctx := ContextWithUser(r.Context(), userID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
