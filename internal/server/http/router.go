package http

import (
	"net/http"

	"github.com/dmitrijs2005/hotelbook/internal/logging"
	"github.com/julienschmidt/httprouter"
)

// NewRouter builds the API handler. Auth routes are served both at the root
// and under /api.
func NewRouter(svc AuthService, logger logging.Logger, corsOrigins []string) http.Handler {
	h := NewHandlers(svc, logger)

	router := httprouter.New()
	router.NotFound = http.HandlerFunc(h.NotFound)
	router.MethodNotAllowed = http.HandlerFunc(h.MethodNotAllowed)

	for _, prefix := range []string{"", "/api"} {
		router.POST(prefix+"/auth/register", h.Register)
		router.POST(prefix+"/auth/login", h.Login)
		router.GET(prefix+"/auth/me", RequireAuth(svc, h.Me))
	}
	router.GET("/health", h.Health)
	router.GET("/api", h.APIRoot)
	router.GET("/api/", h.APIRoot)

	var handler http.Handler = router
	handler = CORS(corsOrigins)(handler)
	handler = RequestLogging(logger)(handler)
	return handler
}
