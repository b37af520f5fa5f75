package service

import (
	"strconv"
	"strings"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/models"
)

// CartEntry 购物车条目（同一商品 + 同一变体集合对应一条）
type CartEntry struct {
	ItemKey         string       `json:"item_key"`
	ProductID       string       `json:"product_id"`
	Name            string       `json:"name"`
	Quantity        int          `json:"quantity"`
	UnitPrice       models.Money `json:"unit_price"`
	ImageURL        string       `json:"image_url"`
	VariationID     string       `json:"variation_id"`
	VariationIDs    []string     `json:"variation_ids"`
	VariationLabel  string       `json:"variation_label"`
	VariationLabels []string     `json:"variation_labels"`
}

// Cart 会话购物车
// Items 保持加入顺序；Modified 为 true 时由调用方负责持久化
type Cart struct {
	Tenant   string
	Items    []CartEntry
	Modified bool
}

// NewCart 创建空购物车
func NewCart() *Cart {
	return &Cart{Items: []CartEntry{}}
}

// Find 按条目标识查找
func (c *Cart) Find(itemKey string) (*CartEntry, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Items {
		if c.Items[i].ItemKey == itemKey {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// Len 条目数量
func (c *Cart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

func (c *Cart) drop(itemKey string) {
	for i := range c.Items {
		if c.Items[i].ItemKey == itemKey {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// AddToCartInput 加入购物车的原始请求字段
type AddToCartInput struct {
	Quantity     string
	VariationIDs []string
	VariationID  string // 兼容单选表单字段
}

// ParseCartQuantity 解析数量并限制在 [1, 999]，非法输入视为 1
func ParseCartQuantity(raw string) int {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return constants.CartQuantityMin
	}
	if quantity < constants.CartQuantityMin {
		return constants.CartQuantityMin
	}
	if quantity > constants.CartQuantityMax {
		return constants.CartQuantityMax
	}
	return quantity
}

// AddToCart 将商品（含所选变体）加入购物车
// 未知的变体ID会被忽略；选择超出分组上限时购物车保持不变并返回 *SelectionViolationError
func AddToCart(cart *Cart, product *models.Product, input AddToCartInput) error {
	if cart == nil || product == nil {
		return ErrProductNotFound
	}
	quantity := ParseCartQuantity(input.Quantity)
	selected := resolveSelectedVariations(product, requestedVariationIDs(input))

	if err := ValidateVariationSelection(selected); err != nil {
		return err
	}

	unitPrice := product.PriceAmount
	ids := make([]string, 0, len(selected))
	labels := make([]string, 0, len(selected))
	for _, variation := range selected {
		unitPrice = unitPrice.Add(variation.AdditionalPrice)
		ids = append(ids, variation.IDString())
		labels = append(labels, variation.Label())
	}

	itemKey := DeriveCartItemKey(product.IDString(), ids)
	entry, ok := cart.Find(itemKey)
	if !ok {
		primary := ""
		if len(ids) > 0 {
			primary = ids[0]
		}
		cart.Items = append(cart.Items, CartEntry{
			ItemKey:         itemKey,
			ProductID:       product.IDString(),
			Name:            product.Name,
			Quantity:        0,
			UnitPrice:       unitPrice,
			ImageURL:        product.ImageURL,
			VariationID:     primary,
			VariationIDs:    sortedVariationIDs(ids),
			VariationLabel:  strings.Join(labels, ", "),
			VariationLabels: labels,
		})
		entry = &cart.Items[len(cart.Items)-1]
	}
	entry.Quantity += quantity
	cart.Modified = true
	return nil
}

// DecrementCartItem 数量减一，减到 0 时移除条目
func DecrementCartItem(cart *Cart, itemKey string) {
	if cart == nil {
		return
	}
	cart.Modified = true
	entry, ok := cart.Find(itemKey)
	if !ok {
		return
	}
	entry.Quantity--
	if entry.Quantity <= 0 {
		cart.drop(itemKey)
	}
}

// RemoveCartItem 移除条目
func RemoveCartItem(cart *Cart, itemKey string) {
	if cart == nil {
		return
	}
	cart.Modified = true
	cart.drop(itemKey)
}

// ClearCart 清空购物车（下单成功后调用）
func ClearCart(cart *Cart) {
	if cart == nil {
		return
	}
	cart.Items = []CartEntry{}
	cart.Modified = true
}

// requestedVariationIDs 合并多选与单选字段，去重并保持顺序
func requestedVariationIDs(input AddToCartInput) []string {
	seen := make(map[string]struct{}, len(input.VariationIDs)+1)
	result := make([]string, 0, len(input.VariationIDs)+1)
	push := func(raw string) {
		id := strings.TrimSpace(raw)
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	for _, raw := range input.VariationIDs {
		push(raw)
	}
	push(input.VariationID)
	return result
}

func resolveSelectedVariations(product *models.Product, ids []string) []models.Variation {
	if len(ids) == 0 || len(product.Variations) == 0 {
		return nil
	}
	byID := make(map[string]models.Variation, len(product.Variations))
	for _, variation := range product.Variations {
		byID[variation.IDString()] = variation
	}
	selected := make([]models.Variation, 0, len(ids))
	for _, id := range ids {
		if variation, ok := byID[id]; ok {
			selected = append(selected, variation)
		}
	}
	return selected
}
