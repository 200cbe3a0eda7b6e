package middleware

import (
	"net/http"
	"net/url"
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:4001",
}

// Cors libera o front-end do painel e os origins de desenvolvimento.
// O origin do dashboard vem da configuração para não hardcodar o
// domínio de produção aqui.
func Cors(dashboardURL string) func(http.Handler) http.Handler {
	allowed := append([]string{}, defaultAllowedOrigins...)
	if origin := originOf(dashboardURL); origin != "" {
		allowed = append(allowed, origin)
	}

	isAllowed := func(origin string) bool {
		for _, a := range allowed {
			if origin == a {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if isAllowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Requested-With")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Max-Age", "86400") // Cache do CORS por 24 horas
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originOf reduz uma URL ao seu origin (esquema + host).
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
