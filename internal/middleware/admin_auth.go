package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/peakfit/backend/pkg"

	log "github.com/sirupsen/logrus"
)

// AdminAuthHandler guards the administrative catalog writes with a static
// token check. Every other path passes through untouched.
type AdminAuthHandler struct {
	adminToken   string
	guardedPaths map[string]bool
}

func NewAdminAuthHandler(adminToken string) *AdminAuthHandler {
	return &AdminAuthHandler{
		adminToken: adminToken,
		guardedPaths: map[string]bool{
			"/api/exercises":      true,
			"/api/plan_exercises": true,
		},
	}
}

func (h *AdminAuthHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				return
			}

			if r.Method != http.MethodPost || !h.guardedPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get("X-Admin-Token")
			if h.adminToken == "" ||
				subtle.ConstantTimeCompare([]byte(authToken), []byte(h.adminToken)) != 1 {
				reqIp, _ := pkg.ReadUserIP(r)
				log.Warnf("unauthorized admin request for %s from %s", r.URL.Path, reqIp)
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
