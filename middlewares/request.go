package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID ติด X-Request-ID ทุก request และ log error ที่ handler แนบไว้
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestId", id)
		c.Header(RequestIDHeader, id)

		c.Next()

		for _, e := range c.Errors {
			log.Printf("❌ [%s] %s %s: %v", id, c.Request.Method, c.FullPath(), e.Err)
		}
	}
}

// Timeout ใส่ deadline ให้ context ของ request (ส่งต่อไปถึง gorm และ geo client)
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
