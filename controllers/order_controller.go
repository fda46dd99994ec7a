package controllers

import (
	"context"

	"foodshare/entity"
	"foodshare/pkg/resp"
	"foodshare/services"
	"foodshare/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /cart/checkout
func (oc *OrderController) Checkout(c *gin.Context) {
	o, err := oc.Svc.Checkout(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, o)
}

// GET /buyer/orders
func (oc *OrderController) BuyerOrders(c *gin.Context) {
	list, err := oc.Svc.BuyerOrders(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /seller/dashboard
func (oc *OrderController) SellerDashboard(c *gin.Context) {
	dash, err := oc.Svc.SellerOrders(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, dash)
}

// GET /orders/:id/invoice
func (oc *OrderController) Invoice(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	inv, err := oc.Svc.Invoice(c.Request.Context(), id, utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, inv)
}

// ===== Status changes (form: orderid) =====

type transition func(ctx context.Context, orderID, actingUserID uint) (*entity.Order, error)

func (oc *OrderController) run(c *gin.Context, fn transition) {
	orderID, ok := uintForm(c, "orderid")
	if !ok {
		return
	}
	if _, err := fn(c.Request.Context(), orderID, utils.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	resp.Success(c)
}

// POST /orders/ready
func (oc *OrderController) MarkReady(c *gin.Context) { oc.run(c, oc.Svc.MarkReady) }

// POST /orders/collected
func (oc *OrderController) MarkCollected(c *gin.Context) { oc.run(c, oc.Svc.MarkCollected) }

// POST /orders/cancel
func (oc *OrderController) Cancel(c *gin.Context) { oc.run(c, oc.Svc.Cancel) }
