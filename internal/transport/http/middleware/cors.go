package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS admits the configured client origin; a bare host is taken as http.
// An empty origin or "*" admits every origin.
func CORS(clientOrigin string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}

	origin := strings.TrimRight(strings.TrimSpace(clientOrigin), "/")
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		if !strings.Contains(origin, "://") {
			origin = "http://" + origin
		}
		cfg.AllowOrigins = []string{origin}
	}
	return cors.New(cfg)
}
