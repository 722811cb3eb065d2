package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrice(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"유럽식 천단위+소수점", "1.299,99", 1299.99, true},
		{"유럽식 천단위+00", "15.999,00", 15999.00, true},
		{"영미식 천단위+소수점", "2,499.00", 2499.00, true},
		{"공백 천단위", "89 990", 89990.0, true},
		{"정수", "1299", 1299.0, true},
		{"단순 소수", "12.34", 12.34, true},
		{"쉼표만 있는 천단위", "2,499", 2499.0, true},
		{"빈 문자열", "", 0, false},
		{"숫자가 아님", "abc", 0, false},
		{"구분자만 있음", ",.", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizePrice(tc.input)

			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.expected, got, 0.0001)
			}
		})
	}
}

func TestParsePriceText(t *testing.T) {
	testCases := []struct {
		name             string
		input            string
		expectedAmount   float64
		expectedCurrency string
		ok               bool
	}{
		{"파운드", "£1,299.99", 1299.99, "GBP", true},
		{"유로 유럽식", "€1.299,99", 1299.99, "EUR", true},
		{"달러", "Price: $149.00", 149.0, "USD", true},
		{"리라", "₺15.999,00", 15999.0, "TRY", true},
		{"루블 공백 천단위", "₽89 990", 89990.0, "RUB", true},
		{"통화 기호 없음", "1299", 1299.0, "", true},
		{"숫자 없음", "£only text", 0, "GBP", false},
		{"빈 문자열", "", 0, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount, currency, ok := ParsePriceText(tc.input)

			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expectedCurrency, currency)
			if tc.ok {
				assert.InDelta(t, tc.expectedAmount, amount, 0.0001)
			}
		})
	}
}

func TestLookupCurrencyCode_대응표순서우선(t *testing.T) {
	assert.Equal(t, "GBP", lookupCurrencyCode("£100 ($120)"))
	assert.Equal(t, "GBP", lookupCurrencyCode("$120 (£100)"), "텍스트 내 위치가 아니라 대응표 순서가 우선해야 합니다")
	assert.Equal(t, "", lookupCurrencyCode("₩10000"))
}
