package service

import (
	"github.com/papelaria-next/internal/models"

	"github.com/shopspring/decimal"
)

func uintPtr(v uint) *uint {
	return &v
}

func mustMoney(raw string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(raw))
}

// agendaProduct 构造 "Agenda 2026"：封面分组最多选 1 项，另有一个无分组的贴纸选项
func agendaProduct() *models.Product {
	capa := &models.VariationCategory{ID: 7, ProductID: 1, Name: "Capa", MaxChoices: 1}
	return &models.Product{
		ID:          1,
		TenantID:    1,
		Name:        "Agenda 2026",
		PriceAmount: mustMoney("75.00"),
		ImageURL:    "https://i.ibb.co/agenda.jpg",
		IsActive:    true,
		VariationCategories: []models.VariationCategory{
			*capa,
		},
		Variations: []models.Variation{
			{ID: 10, ProductID: 1, CategoryID: uintPtr(7), Category: capa, Name: "Azul", AdditionalPrice: mustMoney("0")},
			{ID: 11, ProductID: 1, CategoryID: uintPtr(7), Category: capa, Name: "Vermelha", AdditionalPrice: mustMoney("5.00")},
			{ID: 2, ProductID: 1, Name: "Adesivos", Size: "A5", AdditionalPrice: mustMoney("3.50")},
		},
	}
}
