package service

import (
	"strings"

	"github.com/papelaria-next/internal/models"
)

// CartLine 规范化后的购物车行
type CartLine struct {
	ProductID       string
	ItemKey         string
	Name            string
	Quantity        int
	UnitPrice       models.Money
	LineTotal       models.Money
	ImageURL        string
	VariationLabel  string
	VariationID     string
	VariationIDs    []string
	VariationLabels []string
}

// CartSummary 购物车汇总（每次读取时重新计算，不做缓存）
type CartSummary struct {
	Items      []CartLine
	TotalItems int
	Total      models.Money
}

// NormalizeCart 将购物车转换为可展示/下单的汇总
func NormalizeCart(cart *Cart) CartSummary {
	summary := CartSummary{Items: []CartLine{}, Total: models.Money{}}
	if cart == nil {
		return summary
	}

	for _, entry := range cart.Items {
		quantity := entry.Quantity
		if quantity < 0 {
			quantity = 0
		}
		lineTotal := entry.UnitPrice.MulInt(quantity)
		summary.Total = summary.Total.Add(lineTotal)
		summary.TotalItems += quantity

		label := entry.VariationLabel
		if label == "" && len(entry.VariationLabels) > 0 {
			label = joinNonEmpty(entry.VariationLabels, ", ")
		}
		name := entry.Name
		if name != "" && label != "" {
			name = name + " - " + label
		}
		productID := entry.ProductID
		if productID == "" {
			productID = entry.ItemKey
		}

		summary.Items = append(summary.Items, CartLine{
			ProductID:       productID,
			ItemKey:         entry.ItemKey,
			Name:            name,
			Quantity:        quantity,
			UnitPrice:       entry.UnitPrice,
			LineTotal:       lineTotal,
			ImageURL:        entry.ImageURL,
			VariationLabel:  label,
			VariationID:     entry.VariationID,
			VariationIDs:    entry.VariationIDs,
			VariationLabels: entry.VariationLabels,
		})
	}
	return summary
}

func joinNonEmpty(values []string, sep string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, sep)
}
