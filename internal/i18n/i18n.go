package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleEN = "en-US"
	LocalePT = "pt-BR"
	LocaleZH = "zh-CN"

	// DefaultLocale 未识别语言时的回退语言
	DefaultLocale = LocaleEN
)

// ResolveLocale 解析请求语言：query lang > X-Locale > Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	candidates := []string{
		c.Query("lang"),
		c.GetHeader("X-Locale"),
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(part)
		if idx := strings.Index(tag, ";"); idx >= 0 {
			tag = tag[:idx]
		}
		candidates = append(candidates, tag)
	}
	for _, candidate := range candidates {
		if locale, ok := NormalizeLocale(candidate); ok {
			return locale
		}
	}
	return DefaultLocale
}

// NormalizeLocale 将语言标签归一化为已支持的语言
func NormalizeLocale(tag string) (string, bool) {
	tag = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(tag, "_", "-")))
	if tag == "" {
		return "", false
	}
	switch {
	case tag == "pt" || strings.HasPrefix(tag, "pt-"):
		return LocalePT, true
	case tag == "en" || strings.HasPrefix(tag, "en-"):
		return LocaleEN, true
	case tag == "zh" || strings.HasPrefix(tag, "zh-"):
		return LocaleZH, true
	default:
		return "", false
	}
}

// T 翻译消息 key，未命中时依次回退到默认语言与 key 本身
func T(locale, key string) string {
	if messages, ok := catalogs[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
