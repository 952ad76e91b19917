package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger checks the data store connection for the health endpoint.
type Pinger interface {
	Ping() error
}

type HealthController struct {
	db      Pinger
	version string
}

func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Health reports liveness and database reachability.
// GET /health
func (hc *HealthController) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	if err := hc.db.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"version": hc.version,
	})
}
