package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/geoaudit/logging"
)

// Context keys handlers use to describe the audit they served
const (
	KindKey    = "auditKind"
	TargetsKey = "auditTargets"
)

// saveEvery is how many tracked requests pass between statistics saves
const saveEvery = 100

// TrackAudit marks the request as an audit of the given targets
func TrackAudit(c *gin.Context, kind logging.RequestKind, targets ...string) {
	c.Set(KindKey, kind)
	c.Set(TargetsKey, targets)
}

// StatsMiddleware tracks visitors and audit requests
func StatsMiddleware(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		value, ok := c.Get(KindKey)
		if !ok {
			return
		}
		kind, _ := value.(logging.RequestKind)
		targets := c.GetStringSlice(TargetsKey)

		loadTime := float64(time.Since(start).Milliseconds())
		stats.TrackRequest(kind, targets, loadTime, c.Writer.Status() >= 400)

		if stats.Requests()%saveEvery == 0 {
			go func() {
				if err := stats.Save(); err != nil {
					log.Printf("Failed to save statistics: %v", err)
				}
			}()
		}
	}
}
