package public

import (
	"github.com/papelaria-next/internal/http/handlers/shared"
	"github.com/papelaria-next/internal/http/response"
	"github.com/papelaria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	Tenant       string       `json:"tenant" form:"tenant"`
	ProductID    looseValue   `json:"product_id" form:"product_id"`
	Quantity     looseValue   `json:"quantity" form:"quantity"`
	VariationIDs []looseValue `json:"variation_ids" form:"variation_ids"`
	VariationID  looseValue   `json:"variation_id" form:"variation_id"`
}

// UpdateCartItemRequest 修改购物车条目请求
type UpdateCartItemRequest struct {
	ItemKey string `json:"item_key" form:"item_key"`
	Action  string `json:"action" form:"action"`
}

// GetCart 获取规范化后的购物车
func (h *Handler) GetCart(c *gin.Context) {
	summary, err := h.CartService.Summary(c.Request.Context(), shared.CartSessionID(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, service.SerializeCartSummary(summary))
}

// GetCartSummary 获取购物车角标数据
func (h *Handler) GetCartSummary(c *gin.Context) {
	summary, err := h.CartService.Summary(c.Request.Context(), shared.CartSessionID(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	transport := service.SerializeCartSummary(summary)
	response.Success(c, gin.H{
		"total_items": transport.TotalItems,
		"total":       transport.Total,
	})
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	productID, ok := parseUintValue(req.ProductID.String())
	if !ok {
		productID, ok = parseUintParam(c, "id")
	}
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	summary, err := h.CartService.AddItem(c.Request.Context(), service.AddCartItemInput{
		SessionID:        shared.CartSessionID(c),
		TenantIdentifier: tenantIdentifier(c, req.Tenant),
		ProductID:        productID,
		Quantity:         req.Quantity.String(),
		VariationIDs:     looseStrings(req.VariationIDs),
		VariationID:      req.VariationID.String(),
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, service.SerializeCartSummary(summary))
}

// UpdateCartItem 减少或移除购物车条目
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	summary, err := h.CartService.UpdateItem(c.Request.Context(), service.UpdateCartItemInput{
		SessionID: shared.CartSessionID(c),
		ItemKey:   req.ItemKey,
		Action:    req.Action,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, service.SerializeCartSummary(summary))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.CartService.Clear(c.Request.Context(), shared.CartSessionID(c)); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, service.SerializeCartSummary(service.NormalizeCart(service.NewCart())))
}
