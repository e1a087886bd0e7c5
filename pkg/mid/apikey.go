package mid

import (
	"net/http"
)

// APIKeyHeader carries the shared secret on protected requests.
const APIKeyHeader = "X-API-Key"

// KeyVerifier decides whether a presented key is acceptable.
type KeyVerifier interface {
	Verify(key string) bool
}

// RequireAPIKey rejects requests without a valid key with 401. GET and
// OPTIONS pass through unchecked so the explorer and preflights work.
func RequireAPIKey(v KeyVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if !v.Verify(r.Header.Get(APIKeyHeader)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"Invalid or missing API key"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
