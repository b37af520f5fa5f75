package admin

import (
	"github.com/papelaria-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadImage 上传商品图片到图床，返回可直接保存的 URL
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	url, err := h.UploadService.UploadImage(c.Request.Context(), file)
	if err != nil {
		respondUploadError(c, err)
		return
	}
	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
