package middlewares

import (
	"strings"

	"foodshare/pkg/resp"
	"foodshare/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware ตรวจ JWT จาก query (?token=) ก่อน แล้วค่อย header
// browser ส่ง header ตอนเปิด websocket ไม่ได้
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenStr == "" {
			resp.Unauthorized(c, "missing token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		utils.SetClaims(c, claims)
		c.Next()
	}
}
