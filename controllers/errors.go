package controllers

import (
	"errors"
	"strconv"

	"foodshare/pkg/resp"
	"foodshare/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError แปลง error ของ service เป็น HTTP status
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		resp.Unauthorized(c, "Unauthorized")
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrExternalService):
		_ = c.Error(err)
		resp.BadGateway(c, "upstream service unavailable, please try again later")
	default:
		resp.ServerError(c, err)
	}
}

// uintParam อ่าน path param เป็น uint, ผิดรูปแบบตอบ 400 ให้แล้ว
func uintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}

func uintForm(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.PostForm(name), 10, 64)
	if err != nil || n == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}
