package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"foodshare/pkg/resp"
	"foodshare/services"
	"foodshare/utils"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Svc        *services.RestaurantService
	UploadsDir string
}

func NewRestaurantController(s *services.RestaurantService, uploadsDir string) *RestaurantController {
	return &RestaurantController{Svc: s, UploadsDir: uploadsDir}
}

// GET /restaurants (เรียงตามระยะเดินจาก user)
func (rc *RestaurantController) List(c *gin.Context) {
	list, err := rc.Svc.ListNearby(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /restaurants/:id
func (rc *RestaurantController) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	detail, err := rc.Svc.View(c.Request.Context(), id, utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, detail)
}

// GET /autocomplete/address?address=
func (rc *RestaurantController) Autocomplete(c *gin.Context) {
	res, err := rc.Svc.Autocomplete(c.Request.Context(), c.Query("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, res)
}

// savePicture เก็บไฟล์จาก field ถ้ามีส่งมา (ไม่มีไฟล์ = "", nil)
func savePicture(c *gin.Context, field, dir string) (string, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return utils.SavePicture(c, fh, dir)
}

func uploadFailed(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrBadExtension) {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.BadRequest(c, "invalid upload")
}

// POST /seller/restaurant (multipart: name, address, cover)
func (rc *RestaurantController) Setup(c *gin.Context) {
	cover, err := savePicture(c, "cover", rc.UploadsDir)
	if err != nil {
		uploadFailed(c, err)
		return
	}
	rest, err := rc.Svc.Setup(c.Request.Context(), utils.CurrentUserID(c), services.SetupRestaurantIn{
		Name:     c.PostForm("name"),
		Address:  c.PostForm("address"),
		CoverPic: cover,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, rest)
}

// PATCH /seller/restaurant (multipart, ส่งเฉพาะ field ที่จะแก้)
func (rc *RestaurantController) Edit(c *gin.Context) {
	var in services.EditRestaurantIn
	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("address"); ok {
		in.Address = &v
	}
	cover, err := savePicture(c, "cover", rc.UploadsDir)
	if err != nil {
		uploadFailed(c, err)
		return
	}
	if cover != "" {
		in.CoverPic = &cover
	}

	rest, err := rc.Svc.Edit(c.Request.Context(), utils.CurrentUserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, rest)
}

// POST /seller/open (form: toggle=true|false)
func (rc *RestaurantController) SetOpen(c *gin.Context) {
	open, err := strconv.ParseBool(c.PostForm("toggle"))
	if err != nil {
		resp.BadRequest(c, "toggle must be true or false")
		return
	}
	rest, err := rc.Svc.SetOpen(c.Request.Context(), utils.CurrentUserID(c), open)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, rest)
}
