package controllers

import (
	"foodshare/pkg/resp"
	"foodshare/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct{ Svc *services.AdminService }

func NewAdminController(s *services.AdminService) *AdminController {
	return &AdminController{Svc: s}
}

// GET /admin/users
func (ac *AdminController) Users(c *gin.Context) {
	users, err := ac.Svc.Users(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, users)
}

// GET /admin/restaurants
func (ac *AdminController) Restaurants(c *gin.Context) {
	rests, err := ac.Svc.Restaurants(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, rests)
}

// GET /admin/contact
func (ac *AdminController) Contacts(c *gin.Context) {
	list, err := ac.Svc.Contacts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, list)
}
