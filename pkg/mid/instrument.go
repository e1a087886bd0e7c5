package mid

import (
	"net/http"
	"time"
)

// RequestObserver records completed requests.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Instrument reports each request to obs. The route label is the matched
// ServeMux pattern when there is one, so unknown paths do not add series.
func Instrument(obs RequestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newRecorder(w)
			next.ServeHTTP(rec, r)
			obs.ObserveRequest(r.Method, routeOf(r), rec.code(), time.Since(start))
		})
	}
}
