package middleware

import (
	"context"
	"net/http"
	"strings"

	"TaskBackend/utils"
)

// AuthMiddleware checks the bearer token and puts the authenticated user id
// into the request context under "user_id". Mutation resolvers fall back to
// it as the actor when the caller omits updatedBy.
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.ResponseWithError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ValidateJwt(tokenString)
		if err != nil {
			utils.ResponseWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), "user_id", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
