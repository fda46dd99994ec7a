package utils

import "github.com/gin-gonic/gin"

const (
	ctxUserID = "userId"
	ctxRole   = "role"
)

// SetClaims เก็บ claims ที่ตรวจแล้วไว้ใน gin context
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxRole, claims.Role)
}

// CurrentUserID คืน 0 ถ้า request ไม่ได้ผ่าน auth middleware
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}
