package utils

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrBadExtension = errors.New("picture must be .png, .jpg, .jpeg or .gif")

var allowedPictureExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

func AllowedPicture(filename string) bool {
	return allowedPictureExt[strings.ToLower(filepath.Ext(filename))]
}

// SavePicture เก็บไฟล์อัปโหลดลง folder ด้วยชื่อสุ่ม คืนชื่อไฟล์ที่บันทึก
func SavePicture(c *gin.Context, fh *multipart.FileHeader, folder string) (string, error) {
	if !AllowedPicture(fh.Filename) {
		return "", ErrBadExtension
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, filepath.Join(folder, name)); err != nil {
		return "", err
	}
	return name, nil
}
