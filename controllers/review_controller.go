package controllers

import (
	"foodshare/pkg/resp"
	"foodshare/services"
	"foodshare/utils"

	"github.com/gin-gonic/gin"
)

type AddReviewRequest struct {
	OrderID     uint   `form:"orderid" json:"orderId" binding:"required"`
	Stars       int    `form:"stars" json:"stars" binding:"required"`
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

type ReviewController struct{ Svc *services.ReviewService }

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: s}
}

// POST /reviews
func (rc *ReviewController) Add(c *gin.Context) {
	var req AddReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := rc.Svc.AddReview(c.Request.Context(), services.AddReviewIn{
		OrderID:     req.OrderID,
		UserID:      utils.CurrentUserID(c),
		Stars:       req.Stars,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, rev)
}

// GET /restaurants/:id/reviews
func (rc *ReviewController) ListForRestaurant(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	list, err := rc.Svc.ListForRestaurant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, list)
}
