// Package mirror serves the most recently polled menu snapshot to kiosks on
// the local network, so tablets keep a menu even when they cannot reach the
// upstream API themselves.
package mirror

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agusnoopy3000/Carta-QR/internal/admin"
	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

// SnapshotSource is the slice of the freshness controller the mirror reads.
type SnapshotSource interface {
	Snapshot() (*models.MenuSnapshot, time.Time)
}

// NewRouter builds the mirror routes. changes may be nil when no admin
// watcher runs alongside.
func NewRouter(source SnapshotSource, changes *admin.ChangeLog) *gin.Engine {
	router := gin.Default()

	v1 := router.Group("/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			snapshot, fetchedAt := source.Snapshot()
			c.JSON(http.StatusOK, gin.H{
				"status":      "ok",
				"hasSnapshot": snapshot != nil,
				"lastUpdate":  fetchedAt,
			})
		})

		v1.GET("/menu", func(c *gin.Context) {
			snapshot, fetchedAt := source.Snapshot()
			if snapshot == nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot yet"})
				return
			}
			c.Header("X-Menu-Fetched-At", fetchedAt.UTC().Format(time.RFC3339))
			c.JSON(http.StatusOK, snapshot)
		})

		v1.GET("/menu/categories/:code", func(c *gin.Context) {
			snapshot, _ := source.Snapshot()
			if snapshot == nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot yet"})
				return
			}
			category, ok := snapshot.Category(c.Param("code"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			c.JSON(http.StatusOK, category)
		})

		if changes != nil {
			v1.GET("/changes", func(c *gin.Context) {
				c.JSON(http.StatusOK, changes.Events())
			})
		}
	}

	return router
}
