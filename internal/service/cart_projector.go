package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/models"
)

// TransportItem 对外输出的购物车行（金额为字符串）
type TransportItem struct {
	ProductID      string   `json:"product_id"`
	ItemKey        string   `json:"item_key"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPrice      string   `json:"unit_price"`
	ImageURL       string   `json:"image_url"`
	VariationLabel string   `json:"variation_label"`
	VariationID    string   `json:"variation_id"`
	VariationIDs   []string `json:"variation_ids"`
}

// TransportSummary 对外输出的购物车汇总
type TransportSummary struct {
	Items      []TransportItem `json:"items"`
	TotalItems int             `json:"total_items"`
	Total      string          `json:"total"`
}

// SerializeCartSummary 将汇总转换为传输格式，金额使用精确的两位小数字符串
func SerializeCartSummary(summary CartSummary) TransportSummary {
	items := make([]TransportItem, 0, len(summary.Items))
	for _, line := range summary.Items {
		itemKey := line.ItemKey
		if itemKey == "" {
			itemKey = line.ProductID
		}
		variationIDs := line.VariationIDs
		if variationIDs == nil {
			variationIDs = []string{}
		}
		items = append(items, TransportItem{
			ProductID:      line.ProductID,
			ItemKey:        itemKey,
			Name:           line.Name,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice.String(),
			ImageURL:       line.ImageURL,
			VariationLabel: line.VariationLabel,
			VariationID:    line.VariationID,
			VariationIDs:   variationIDs,
		})
	}
	return TransportSummary{
		Items:      items,
		TotalItems: summary.TotalItems,
		Total:      summary.Total.String(),
	}
}

// DeserializeTransportSummary 从传输格式还原汇总
func DeserializeTransportSummary(transport TransportSummary) CartSummary {
	summary := CartSummary{
		Items:      make([]CartLine, 0, len(transport.Items)),
		TotalItems: transport.TotalItems,
		Total:      models.ParseMoneyLenient(transport.Total),
	}
	for _, item := range transport.Items {
		price := models.ParseMoneyLenient(item.UnitPrice)
		summary.Items = append(summary.Items, CartLine{
			ProductID:      item.ProductID,
			ItemKey:        item.ItemKey,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPrice:      price,
			LineTotal:      price.MulInt(item.Quantity),
			ImageURL:       item.ImageURL,
			VariationLabel: item.VariationLabel,
			VariationID:    item.VariationID,
			VariationIDs:   item.VariationIDs,
		})
	}
	return summary
}

// CheckoutContact 下单联系人与封面信息
type CheckoutContact struct {
	Name         string
	Phone        string
	CoverName    string
	CoverURL     string
	BackCoverURL string
	ClientIP     string
}

// DisplayName 组合联系人展示名："姓名 (电话)"，仅有电话时为电话
func (c CheckoutContact) DisplayName() string {
	name := strings.TrimSpace(c.Name)
	phone := strings.TrimSpace(c.Phone)
	if phone != "" {
		if name != "" {
			return fmt.Sprintf("%s (%s)", name, phone)
		}
		return phone
	}
	if name == "" {
		return "Customer"
	}
	return name
}

// BuildOrderDraft 将购物车汇总转换为待持久化的订单
func BuildOrderDraft(tenantID uint, summary CartSummary, contact CheckoutContact) *models.Order {
	order := &models.Order{
		TenantID:     tenantID,
		Customer:     contact.DisplayName(),
		Phone:        strings.TrimSpace(contact.Phone),
		Status:       constants.OrderStatusPending,
		TotalAmount:  summary.Total,
		CoverName:    strings.TrimSpace(contact.CoverName),
		CoverURL:     contact.CoverURL,
		BackCoverURL: contact.BackCoverURL,
		ClientIP:     contact.ClientIP,
		Items:        make([]models.OrderItem, 0, len(summary.Items)),
	}
	for _, line := range summary.Items {
		name := line.Name
		if name == "" {
			name = "Product " + line.ProductID
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:      coerceProductID(line.ProductID),
			ProductName:    name,
			ImageURL:       line.ImageURL,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			ItemKey:        line.ItemKey,
			VariationID:    line.VariationID,
			VariationIDs:   models.StringArray(line.VariationIDs),
			VariationLabel: line.VariationLabel,
		})
	}
	return order
}

func coerceProductID(raw string) *uint {
	parsed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	id := uint(parsed)
	return &id
}
