package controllers

import (
	"foodshare/pkg/resp"
	"foodshare/services"

	"github.com/gin-gonic/gin"
)

type ContactController struct{ Svc *services.ContactService }

func NewContactController(s *services.ContactService) *ContactController {
	return &ContactController{Svc: s}
}

// POST /contact
func (cc *ContactController) Submit(c *gin.Context) {
	var req services.ContactIn
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if _, err := cc.Svc.Submit(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	resp.Success(c)
}
