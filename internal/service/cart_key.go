package service

import (
	"sort"
	"strings"
)

// DeriveCartItemKey 生成购物车条目标识
// 变体ID按字符串排序后以 "-" 连接，格式为 "商品ID:变体ID集合"；无变体时即为商品ID
func DeriveCartItemKey(productID string, variationIDs []string) string {
	if len(variationIDs) == 0 {
		return productID
	}
	sorted := sortedVariationIDs(variationIDs)
	return productID + ":" + strings.Join(sorted, "-")
}

func sortedVariationIDs(variationIDs []string) []string {
	sorted := make([]string, len(variationIDs))
	copy(sorted, variationIDs)
	sort.Strings(sorted)
	return sorted
}
