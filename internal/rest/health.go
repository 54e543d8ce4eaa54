package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthz reports liveness. Listing the registry doubles as a check
// that the data directory is readable.
func (a *API) healthz(c *gin.Context) {
	if _, err := a.images.List(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
