package public

import (
	"mime/multipart"

	"github.com/papelaria-next/internal/http/handlers/shared"
	"github.com/papelaria-next/internal/http/response"
	"github.com/papelaria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 下单表单（multipart）
type CheckoutRequest struct {
	Tenant    string `form:"tenant"`
	Name      string `form:"name"`
	Phone     string `form:"phone"`
	CoverName string `form:"cover_name"`
	shared.CaptchaPayloadRequest
}

func optionalFormFile(c *gin.Context, field string) *multipart.FileHeader {
	file, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return file
}

// Checkout 提交订单
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	result, err := h.OrderService.Checkout(c.Request.Context(), service.CheckoutInput{
		SessionID:        shared.CartSessionID(c),
		TenantIdentifier: tenantIdentifier(c, req.Tenant),
		Name:             req.Name,
		Phone:            req.Phone,
		CoverName:        req.CoverName,
		Cover:            optionalFormFile(c, "cover"),
		BackCover:        optionalFormFile(c, "back_cover"),
		ClientIP:         c.ClientIP(),
		Captcha:          req.ToServicePayload(),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	order := result.Order
	response.Success(c, gin.H{
		"order_id": order.ID,
		"status":   order.Status,
		"customer": order.Customer,
		"total":    order.TotalAmount.String(),
		"shop": gin.H{
			"slug":          result.Tenant.SlugValue(),
			"business_name": result.Tenant.BusinessName,
			"whatsapp":      result.Tenant.WhatsApp,
		},
	})
}
