package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Admintools08/BP/internal/ctxkeys"
)

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	VerifyJWT(token string) (string, error)
}

// AuthMiddleware adds the user id to the context when a valid bearer token is present.
// Requests without a token continue anonymously; RequireAuth rejects them where needed.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := verifier.VerifyJWT(token)
			if err != nil {
				slog.Debug("rejected bearer token", "error", err, "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth answers 401 unless AuthMiddleware identified the caller.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.UserID(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
