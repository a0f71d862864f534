package handler

import (
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const thumbWidth = 320

// UploadProductPhoto 处理产品图片上传，并生成缩略图
func (a *API) UploadProductPhoto(c *gin.Context) {
	id, ok := a.requireOwnProduct(c)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no photo in request")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create upload dir")
		return
	}

	// 生成唯一文件名
	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	photoPath := filepath.Join(a.uploadDir, newFilename)

	if err := c.SaveUploadedFile(file, photoPath); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save photo")
		return
	}

	thumbFilename := strings.TrimSuffix(newFilename, ext) + "-thumb.jpg"
	thumbPath := filepath.Join(a.uploadDir, thumbFilename)
	if err := makeThumbnail(photoPath, thumbPath); err != nil {
		os.Remove(photoPath)
		respondError(c, http.StatusBadRequest, "unsupported image format")
		return
	}

	photoURL := a.uploadURL + "/" + newFilename
	thumbURL := a.uploadURL + "/" + thumbFilename
	if err := a.products.SetPhoto(id, photoURL, thumbURL); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": photoURL, "thumb_url": thumbURL})
}

// makeThumbnail 将源图等比缩放到固定宽度并存为 JPEG
func makeThumbnail(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("empty image")
	}

	thumbW := thumbWidth
	if width < thumbW {
		thumbW = width
	}
	thumbH := height * thumbW / width
	if thumbH < 1 {
		thumbH = 1
	}

	thumb := image.NewRGBA(image.Rect(0, 0, thumbW, thumbH))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), img, bounds, draw.Over, nil)

	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	return jpeg.Encode(dst, thumb, &jpeg.Options{Quality: 85})
}
