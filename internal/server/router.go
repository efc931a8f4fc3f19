package server

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(api *API, events *EventServer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// Binding a session without a caller-chosen id gets a generated one
	r.POST("/init", api.Init)

	// Session control endpoints, one per protocol operation
	session := r.Group("/session/:id")
	{
		session.POST("/init", api.Init)
		session.POST("/load", api.Load)
		session.POST("/play", api.Play)
		session.POST("/pause", api.Pause)
		session.POST("/volume", api.SetVolume)
		session.POST("/speed", api.SetSpeed)
		session.POST("/loop-mode", api.SetLoopMode)
		session.POST("/shuffle-mode", api.SetShuffleMode)
		session.POST("/stalling", api.SetStalling)
		session.POST("/seek", api.Seek)
		session.POST("/audio-attributes", api.SetAudioAttributes)
		session.POST("/dispose", api.Dispose)
		session.GET("/state", api.State)

		// Playlist mutations on the live tree
		session.POST("/concatenating/insert-all", api.InsertAll)
		session.POST("/concatenating/remove-range", api.RemoveRange)
		session.POST("/concatenating/move", api.Move)

		// Playback event stream (websocket)
		session.GET("/events", events.Stream)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

// corsMiddleware handles CORS for browser controllers.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
