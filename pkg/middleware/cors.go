// Package middleware provides net/http middleware for handlers that speak the
// envelope format.
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/Eximchain/dappbot-types/internal/config"
)

// CORS returns a CORS middleware handler built from cfg. The defaults match
// the headers every envelope response already carries.
func CORS(cfg config.CORSConfig) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: cfg.AllowedMethods,
		AllowedHeaders: cfg.AllowedHeaders,
		MaxAge:         cfg.MaxAge,
	})
}
