package controllers

import (
	"errors"

	"foodshare/pkg/resp"
	"foodshare/services"
	"foodshare/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	view, err := h.Svc.View(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /cart/update (form: action=increment|decrement, itemid)
// error ฝั่ง business (ไม่มี item, ข้ามร้าน, ไม่มีในตะกร้า) ตอบ 400
func (h *CartController) Update(c *gin.Context) {
	itemID, ok := uintForm(c, "itemid")
	if !ok {
		return
	}
	uid := utils.CurrentUserID(c)

	var err error
	switch c.PostForm("action") {
	case "increment":
		err = h.Svc.Increment(c.Request.Context(), uid, itemID)
	case "decrement":
		err = h.Svc.Decrement(c.Request.Context(), uid, itemID)
	default:
		resp.BadRequest(c, "action must be increment or decrement")
		return
	}
	switch {
	case err == nil:
		resp.Success(c)
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrConflict):
		resp.BadRequest(c, err.Error())
	default:
		respondError(c, err)
	}
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), utils.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	resp.Success(c)
}
