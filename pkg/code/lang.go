package code

import (
	"errors"
	"sync/atomic"
)

// lang holds the English and Chinese text of a message
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const FALLBACK_LNG = "en"

var lng = newLang()

func newLang() *atomic.Value {
	v := &atomic.Value{}
	v.Store(FALLBACK_LNG)
	return v
}

// GetMessage returns the message in the global language, falling back to English
// GetMessage 按全局语言返回消息，缺失时回退英文
func (l lang) GetMessage() string {
	return l.In(GetGlobalDefaultLang())
}

// In returns the message in language, falling back to English.
func (l lang) In(language string) string {
	if language == "zh_cn" && l.zh_cn != "" {
		return l.zh_cn
	}
	return l.en
}

// GetSupportedLanguages returns the language keys a message can carry
func GetSupportedLanguages() []string {
	return []string{"en", "zh_cn"}
}

// SetGlobalDefaultLang sets the global language. Unknown languages reset it to English.
// 设置全局默认语言
func SetGlobalDefaultLang(language string) error {
	for _, l := range GetSupportedLanguages() {
		if l == language {
			lng.Store(language)
			return nil
		}
	}
	lng.Store(FALLBACK_LNG)
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang gets the global default language
// 获取全局默认语言
func GetGlobalDefaultLang() string {
	if l, ok := lng.Load().(string); ok {
		return l
	}
	return FALLBACK_LNG
}
