package admin

import (
	"strings"

	"github.com/papelaria-next/internal/http/response"
	"github.com/papelaria-next/internal/repository"
	"github.com/papelaria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders 订单列表（新订单在前，可按状态过滤）
func (h *Handler) ListOrders(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	page, pageSize := response.ParsePage(c)
	orders, total, err := h.OrderService.ListOrders(repository.OrderListFilter{
		TenantID: tenantID,
		Page:     page,
		PageSize: pageSize,
		Status:   strings.ToLower(strings.TrimSpace(c.Query("status"))),
	})
	if err != nil {
		respondOrderError(c, err, "error.query_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrderStats 订单状态计数
func (h *Handler) GetOrderStats(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	counts, err := h.OrderService.StatusCounts(tenantID)
	if err != nil {
		respondOrderError(c, err, "error.query_failed")
		return
	}
	response.Success(c, counts)
}

// GetOrder 订单详情（附带图片列表）
func (h *Handler) GetOrder(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(tenantID, id)
	if err != nil {
		respondOrderError(c, err, "error.query_failed")
		return
	}
	response.Success(c, gin.H{
		"order":  order,
		"images": service.OrderImageURLs(order),
	})
}

// UpdateOrderStatusRequest 修改订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 修改订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.UpdateStatus(tenantID, id, req.Status)
	if err != nil {
		respondOrderError(c, err, "error.save_failed")
		return
	}
	requestLog(c).Infow("admin_order_status_updated",
		"tenant_id", tenantID,
		"order_id", id,
		"status", order.Status,
	)
	response.Success(c, order)
}

// DeleteOrder 删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	tenantID, ok := h.currentTenantID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.OrderService.DeleteOrder(tenantID, id); err != nil {
		respondOrderError(c, err, "error.delete_failed")
		return
	}
	response.Success(c, nil)
}
