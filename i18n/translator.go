package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Messages may
// reference data keys as {key}.
type dictTranslator struct{ lang string }

var dicts = map[string]map[string]string{
	"en": {
		"invalid_type": "invalid type",
		"expected":     "expected {expected}, got {got}",
		"too_short":    "too few fields: expected {expected}, got {got}",
		"too_long":     "too many fields: expected {expected}, got {got}",
		"too_small":    "too small",
		"too_big":      "too big",
		"invalid_enum": "invalid enum value",
		"custom":       "invalid value",
		"parse_error":  "parse error",
		"canceled":     "canceled",
	},
	"ja": {
		"invalid_type": "型が不正です",
		"expected":     "{expected} を期待しましたが {got} でした",
		"too_short":    "フィールドが不足しています: 期待 {expected}、実際 {got}",
		"too_long":     "フィールドが多すぎます: 期待 {expected}、実際 {got}",
		"too_small":    "小さすぎます",
		"too_big":      "大きすぎます",
		"invalid_enum": "列挙値が不正です",
		"custom":       "値が不正です",
		"parse_error":  "解析エラー",
		"canceled":     "キャンセルされました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	d, ok := dicts[t.lang]
	if !ok {
		d = dicts["en"]
	}
	msg, ok := d[code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
