package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/papelaria-next/internal/models"
)

// cartDocument 购物车持久化格式
type cartDocument struct {
	Tenant string      `json:"tenant,omitempty"`
	Items  []CartEntry `json:"items"`
}

// MarshalJSON 仅输出规范字段
func (c Cart) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []CartEntry{}
	}
	return json.Marshal(cartDocument{Tenant: c.Tenant, Items: items})
}

// MarshalJSON 持久化时单价保留原始精度
func (e CartEntry) MarshalJSON() ([]byte, error) {
	type plainEntry CartEntry
	return json.Marshal(struct {
		plainEntry
		UnitPrice string `json:"unit_price"`
	}{plainEntry: plainEntry(e), UnitPrice: e.UnitPrice.ExactString()})
}

// UnmarshalJSON 解析购物车
// 同时兼容旧版 "条目标识 -> 条目" 的映射格式及其字段别名，解析后统一为 CartEntry
func (c *Cart) UnmarshalJSON(data []byte) error {
	fields, err := decodeOrderedObject(data)
	if err != nil {
		return err
	}
	c.Items = []CartEntry{}
	c.Tenant = ""

	canonical := false
	for _, field := range fields {
		if field.key == "items" {
			canonical = true
			break
		}
	}

	if canonical {
		for _, field := range fields {
			switch field.key {
			case "tenant":
				c.Tenant = stringifyCartValue(decodeLooseValue(field.value))
			case "items":
				var rawItems []json.RawMessage
				if err := json.Unmarshal(field.value, &rawItems); err != nil {
					return fmt.Errorf("decode cart items: %w", err)
				}
				for _, raw := range rawItems {
					entry, err := parseCartEntry(raw, "")
					if err != nil {
						return err
					}
					c.Items = append(c.Items, entry)
				}
			}
		}
		return nil
	}

	for _, field := range fields {
		entry, err := parseCartEntry(field.value, field.key)
		if err != nil {
			return err
		}
		c.Items = append(c.Items, entry)
	}
	return nil
}

type orderedField struct {
	key   string
	value json.RawMessage
}

// decodeOrderedObject 按原始顺序读取 JSON 对象的键值
func decodeOrderedObject(data []byte) ([]orderedField, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode cart: expected object")
	}
	fields := make([]orderedField, 0)
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("decode cart key: %w", err)
		}
		key, _ := keyToken.(string)
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode cart value: %w", err)
		}
		fields = append(fields, orderedField{key: key, value: value})
	}
	return fields, nil
}

// rawCartEntry 兼容新旧字段名的条目结构
type rawCartEntry struct {
	ItemKey               interface{}   `json:"item_key"`
	ProductID             interface{}   `json:"product_id"`
	LegacyProductID       interface{}   `json:"produto_id"`
	Name                  interface{}   `json:"name"`
	LegacyName            interface{}   `json:"nome"`
	Quantity              interface{}   `json:"quantity"`
	LegacyQuantity        interface{}   `json:"quantidade"`
	UnitPrice             interface{}   `json:"unit_price"`
	LegacyPrice           interface{}   `json:"preco"`
	ImageURL              interface{}   `json:"image_url"`
	LegacyImage           interface{}   `json:"imagem"`
	VariationID           interface{}   `json:"variation_id"`
	LegacyVariationID     interface{}   `json:"variacao_id"`
	VariationIDs          []interface{} `json:"variation_ids"`
	LegacyVariationIDs    []interface{} `json:"variacoes_ids"`
	VariationLabel        interface{}   `json:"variation_label"`
	LegacyVariationLabel  interface{}   `json:"variacao_label"`
	LegacyVariation       interface{}   `json:"variacao"`
	VariationLabels       []interface{} `json:"variation_labels"`
	LegacyVariationLabels []interface{} `json:"variacoes_labels"`
}

func parseCartEntry(raw json.RawMessage, fallbackKey string) (CartEntry, error) {
	var wire rawCartEntry
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&wire); err != nil {
		return CartEntry{}, fmt.Errorf("decode cart entry %q: %w", fallbackKey, err)
	}

	entry := CartEntry{
		ItemKey:         firstNonEmpty(stringifyCartValue(wire.ItemKey), fallbackKey),
		ProductID:       firstNonEmpty(stringifyCartValue(wire.ProductID), stringifyCartValue(wire.LegacyProductID)),
		Name:            firstNonEmpty(stringifyCartValue(wire.Name), stringifyCartValue(wire.LegacyName)),
		Quantity:        parseStoredQuantity(firstPresent(wire.Quantity, wire.LegacyQuantity)),
		UnitPrice:       models.ParseMoneyLenient(firstPresent(wire.UnitPrice, wire.LegacyPrice)),
		ImageURL:        firstNonEmpty(stringifyCartValue(wire.ImageURL), stringifyCartValue(wire.LegacyImage)),
		VariationID:     firstNonEmpty(stringifyCartValue(wire.VariationID), stringifyCartValue(wire.LegacyVariationID)),
		VariationIDs:    stringifyCartList(firstList(wire.VariationIDs, wire.LegacyVariationIDs)),
		VariationLabels: stringifyCartList(firstList(wire.VariationLabels, wire.LegacyVariationLabels)),
	}
	entry.VariationLabel = firstNonEmpty(
		stringifyCartValue(wire.VariationLabel),
		stringifyCartValue(wire.LegacyVariationLabel),
		stringifyCartValue(wire.LegacyVariation),
	)
	return entry, nil
}

// parseStoredQuantity 解析已存储的数量，缺失或非法时为 0
func parseStoredQuantity(raw interface{}) int {
	var quantity int
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		quantity = int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		quantity = n
	case int:
		quantity = v
	default:
		return 0
	}
	if quantity < 0 {
		return 0
	}
	return quantity
}

func decodeLooseValue(raw json.RawMessage) interface{} {
	var value interface{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return nil
	}
	return value
}

func stringifyCartValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func stringifyCartList(values []interface{}) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, stringifyCartValue(value))
	}
	return result
}

func firstPresent(values ...interface{}) interface{} {
	for _, value := range values {
		if value != nil {
			return value
		}
	}
	return nil
}

func firstList(lists ...[]interface{}) []interface{} {
	for _, list := range lists {
		if len(list) > 0 {
			return list
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
