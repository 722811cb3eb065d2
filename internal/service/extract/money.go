package extract

import (
	"strconv"
	"strings"
	"unicode"
)

// currencySymbols 지원하는 통화 기호와 ISO 4217 통화 코드의 대응표입니다.
// 여러 기호가 함께 나타나면 텍스트 내 위치와 무관하게 이 표의 앞쪽 항목이 우선합니다.
var currencySymbols = []struct {
	Symbol string
	Code   string
}{
	{"£", "GBP"},
	{"€", "EUR"},
	{"$", "USD"},
	{"₺", "TRY"},
	{"₽", "RUB"},
}

// lookupCurrencyCode 대응표를 순서대로 검사하여 텍스트에 포함된 기호 중 처음 일치하는 기호의 통화 코드를 반환합니다.
// 알 수 없는 기호는 에러가 아니라 빈 문자열(통화 미상)로 처리합니다.
func lookupCurrencyCode(text string) string {
	for _, cs := range currencySymbols {
		if strings.Contains(text, cs.Symbol) {
			return cs.Code
		}
	}
	return ""
}

// NormalizePrice 로케일이 불분명한 숫자 문자열을 실수 값으로 정규화합니다.
//
// "1.299,99"(유럽식)와 "1,299.99"(영미식)처럼 천 단위 구분자와 소수점 기호가
// 뒤섞인 표기를 마지막에 나타나는 구분자를 소수점으로 간주하여 해석합니다.
//   - 쉼표가 마침표보다 뒤에 있으면: 마침표 제거 후 쉼표를 소수점으로 치환
//   - 마침표가 쉼표보다 뒤에 있거나 마침표만 있으면: 쉼표 제거
//   - 쉼표만 있거나 둘 다 없으면: 쉼표를 천 단위 구분자로 간주하여 제거
//
// 해석에 실패하면 에러 대신 false를 반환합니다.
func NormalizePrice(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}

	// 내부 공백(일반 공백, NBSP 등) 제거
	value = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)

	commaPos := strings.LastIndex(value, ",")
	dotPos := strings.LastIndex(value, ".")

	switch {
	case commaPos > dotPos && dotPos != -1:
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
	default:
		value = strings.ReplaceAll(value, ",", "")
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}

	return parsed, true
}

// ParsePriceText 통화 기호가 섞인 임의의 가격 텍스트(예: "£1,299.99 GBP")에서
// 금액과 통화 코드를 함께 추출합니다. 금액 해석에 실패하면 false를 반환합니다.
func ParsePriceText(text string) (float64, string, bool) {
	if text == "" {
		return 0, "", false
	}

	currency := lookupCurrencyCode(text)

	var numeric strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			numeric.WriteRune(r)
		}
	}

	amount, ok := NormalizePrice(numeric.String())
	return amount, currency, ok
}
