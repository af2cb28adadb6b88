package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"Ampere/internal/calc/electrical"
)

const (
	LangEnglish = "en"
	LangArabic  = "ar"

	DefaultLang = LangEnglish
)

var messages = map[string]map[string]string{
	LangEnglish: {
		electrical.WarningVoltageDrop: "Voltage drop in circuit '{{name}}' is {{value}}%, above the recommended limit of {{limit}}%.",
		electrical.WarningBreakerSize: "Breaker size ({{breaker}} A) for circuit '{{name}}' is smaller than the calculated current ({{current}} A). Check the load.",

		electrical.ErrorProjectName:   "Project name is required.",
		electrical.ErrorMinOneCircuit: "Add at least one circuit.",
		electrical.ErrorCircuitName:   "Circuit {{number}} needs a name.",
		electrical.ErrorCircuitPower:  "Power of circuit '{{name}}' must be greater than zero.",
		electrical.ErrorVoltage:       "Voltage {{voltage}} V is not supported.",
		electrical.ErrorCableType:     "Cable type '{{cableType}}' is not supported.",
	},
	LangArabic: {
		electrical.WarningVoltageDrop: "هبوط الجهد في الدائرة '{{name}}' يبلغ {{value}}%، وهو أعلى من الحد الموصى به {{limit}}%.",
		electrical.WarningBreakerSize: "سعة القاطع ({{breaker}} أمبير) للدائرة '{{name}}' أقل من التيار المحسوب ({{current}} أمبير). تحقق من الحمل.",

		electrical.ErrorProjectName:   "اسم المشروع مطلوب.",
		electrical.ErrorMinOneCircuit: "أضف دائرة واحدة على الأقل.",
		electrical.ErrorCircuitName:   "الدائرة رقم {{number}} تحتاج إلى اسم.",
		electrical.ErrorCircuitPower:  "يجب أن تكون قدرة الدائرة '{{name}}' أكبر من صفر.",
		electrical.ErrorVoltage:       "الجهد {{voltage}} فولت غير مدعوم.",
		electrical.ErrorCableType:     "نوع الكابل '{{cableType}}' غير مدعوم.",
	},
}

// NormalizeLang maps a language tag such as "ar-SA" or an Accept-Language
// header to a supported catalog, falling back to DefaultLang.
func NormalizeLang(tag string) string {
	for _, part := range strings.Split(tag, ",") {
		base, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		base, _, _ = strings.Cut(strings.ToLower(base), "-")
		if _, ok := messages[base]; ok {
			return base
		}
	}
	return DefaultLang
}

// Localize renders a warning or validation key in lang with its parameters.
// Unknown languages use English; unknown keys are returned as is.
func Localize(lang, key string, params map[string]any) string {
	text, ok := messages[NormalizeLang(lang)][key]
	if !ok {
		text, ok = messages[DefaultLang][key]
	}
	if !ok {
		text = key
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		text = strings.ReplaceAll(text, "{{"+name+"}}", formatParam(params[name]))
	}
	return text
}

func LocalizeWarning(lang string, w electrical.AppWarning) string {
	return Localize(lang, w.Key, w.Params)
}

// formatParam prints whole numbers without decimals and everything else
// rounded to two.
func formatParam(v any) string {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return fmt.Sprintf("%.0f", n)
		}
		return fmt.Sprintf("%.2f", n)
	case float32:
		return formatParam(float64(n))
	default:
		return fmt.Sprint(v)
	}
}
