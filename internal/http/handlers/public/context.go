package public

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// looseValue 同时接受 JSON 字符串与数字的表单值
type looseValue string

// UnmarshalJSON 兼容数字与字符串
func (v *looseValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(raw, "\"") {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*v = looseValue(text)
		return nil
	}
	*v = looseValue(raw)
	return nil
}

func (v looseValue) String() string {
	return strings.TrimSpace(string(v))
}

func looseStrings(values []looseValue) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if text := value.String(); text != "" {
			result = append(result, text)
		}
	}
	return result
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	return parseUintValue(c.Param(name))
}

func parseUintValue(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// tenantIdentifier 优先读取路径中的店铺标识，其次读取请求体字段
func tenantIdentifier(c *gin.Context, fallback string) string {
	if value := strings.TrimSpace(c.Param("tenant")); value != "" {
		return value
	}
	return strings.TrimSpace(fallback)
}
