package middleware

import (
	"net/http"
	"sync"
)

// Serialize runs handlers one at a time under l. The core services are
// single-owner; l is the same lock the backup scheduler takes.
func Serialize(l sync.Locker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l.Lock()
			defer l.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}
