package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "choices").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			if exp := data["expected"]; exp != "" {
				return "有効な" + exp + "ではありません"
			}
			return "型が不正です"
		case "required":
			return "必須フィールドのデータがありません"
		case "null":
			return "null は許可されていません"
		case "unknown_key":
			return "未知のフィールドです"
		case "invalid_enum":
			return "次のいずれかである必要があります: " + data["choices"]
		case "invalid_format":
			return "形式が不正です"
		case "too_short":
			return "要素が少なすぎます"
		case "too_long":
			return "要素が多すぎます"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		case "body_too_large":
			return "リクエストボディが " + data["max"] + " バイトを超えています"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if exp := data["expected"]; exp != "" {
				return "Not a valid " + exp + "."
			}
			return "Invalid type."
		case "required":
			return "Missing data for required field."
		case "null":
			return "Field may not be null."
		case "unknown_key":
			return "Unknown field."
		case "invalid_enum":
			return "Must be one of: " + data["choices"] + "."
		case "invalid_format":
			if exp := data["expected"]; exp != "" {
				return "Not a valid " + exp + "."
			}
			return "Invalid format."
		case "too_short":
			return "Length must be " + data["want"] + "."
		case "too_long":
			return "Length must be " + data["want"] + "."
		case "parse_error":
			return "Invalid input."
		case "duplicate_key":
			return "Duplicate key."
		case "body_too_large":
			return "Request body exceeds " + data["max"] + " bytes."
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }

// Choices joins enum choices for the "choices" data key.
func Choices(vals []string) string { return strings.Join(vals, ", ") }
