package controllers

import (
	"strconv"
	"strings"

	"foodshare/entity"
	"foodshare/pkg/resp"
	"foodshare/services"
	"foodshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MenuController: จัดการ food item ของร้าน (เจ้าของร้านเท่านั้น)
type MenuController struct {
	Svc        *services.FoodItemService
	UploadsDir string
}

func NewMenuController(s *services.FoodItemService, uploadsDir string) *MenuController {
	return &MenuController{Svc: s, UploadsDir: uploadsDir}
}

// restrictions ส่งได้ทั้งหลาย field หรือ "vegan, halal"
func formRestrictions(c *gin.Context) ([]string, bool) {
	vals, ok := c.GetPostFormArray("restrictions")
	if !ok {
		return nil, false
	}
	var out []string
	for _, v := range vals {
		out = append(out, strings.Split(v, ",")...)
	}
	return out, true
}

func formPrice(c *gin.Context) (*decimal.Decimal, bool, error) {
	v, ok := c.GetPostForm("price")
	if !ok {
		return nil, false, nil
	}
	p, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return nil, true, err
	}
	return &p, true, nil
}

// GET /seller/items
func (mc *MenuController) List(c *gin.Context) {
	items, err := mc.Svc.ListMine(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /seller/items (multipart: name, description, price, restrictions, inmenu, picture)
func (mc *MenuController) Create(c *gin.Context) {
	price, ok, err := formPrice(c)
	if err != nil || !ok {
		resp.BadRequest(c, "invalid price")
		return
	}
	inMenu, _ := strconv.ParseBool(c.DefaultPostForm("inmenu", "false"))
	tags, _ := formRestrictions(c)
	pic, err := savePicture(c, "picture", mc.UploadsDir)
	if err != nil {
		uploadFailed(c, err)
		return
	}

	item, err := mc.Svc.Add(c.Request.Context(), utils.CurrentUserID(c), services.AddFoodItemIn{
		Name:         c.PostForm("name"),
		Description:  c.PostForm("description"),
		Price:        *price,
		Restrictions: tags,
		Picture:      pic,
		InMenu:       inMenu,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /seller/items/:id (ส่งเฉพาะ field ที่จะแก้)
func (mc *MenuController) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var upd entity.FoodItemUpdate
	if v, ok := c.GetPostForm("name"); ok {
		upd.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		upd.Description = &v
	}
	price, _, err := formPrice(c)
	if err != nil {
		resp.BadRequest(c, "invalid price")
		return
	}
	upd.Price = price
	if tags, ok := formRestrictions(c); ok {
		upd.Restrictions = &tags
	}
	if v, ok := c.GetPostForm("inmenu"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			resp.BadRequest(c, "inmenu must be true or false")
			return
		}
		upd.InMenu = &b
	}
	pic, err := savePicture(c, "picture", mc.UploadsDir)
	if err != nil {
		uploadFailed(c, err)
		return
	}
	if pic != "" {
		upd.Picture = &pic
	}

	item, err := mc.Svc.Edit(c.Request.Context(), utils.CurrentUserID(c), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, item)
}

// POST /seller/items/:id/menu (form: toggle)
func (mc *MenuController) ToggleMenu(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	inMenu, err := strconv.ParseBool(c.PostForm("toggle"))
	if err != nil {
		resp.BadRequest(c, "toggle must be true or false")
		return
	}
	item, err := mc.Svc.SetInMenu(c.Request.Context(), utils.CurrentUserID(c), id, inMenu)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /seller/items/:id
func (mc *MenuController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := mc.Svc.Delete(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	resp.Success(c)
}
