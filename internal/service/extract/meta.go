package extract

import (
	"strconv"
	"strings"
)

// MetaTagStrategy OpenGraph/상품 메타 태그에서 가격을 추출하는 전략입니다.
//
// og:price:amount(없으면 product:price:amount)의 content 값을 가격으로,
// og:price:currency(없으면 product:price:currency)를 통화로 사용합니다.
// 통화 코드는 대문자로 정규화합니다.
type MetaTagStrategy struct{}

var _ Strategy = (*MetaTagStrategy)(nil)

// Name 전략 이름을 반환합니다.
func (s *MetaTagStrategy) Name() string { return "meta-tags" }

// Attempt 메타 태그에서 가격을 찾습니다.
func (s *MetaTagStrategy) Attempt(doc *Document) *PricePoint {
	amountText := doc.MetaContent("og:price:amount")
	if amountText == "" {
		amountText = doc.MetaContent("product:price:amount")
	}
	if amountText == "" {
		return nil
	}

	// 메타 태그의 가격 값은 소수점을 쉼표로 표기하는 경우가 있어 쉼표를 마침표로 치환합니다.
	amountText = strings.ReplaceAll(amountText, ",", ".")
	amountText = strings.ReplaceAll(amountText, " ", "")

	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil {
		// 해석 불가능한 값은 이 전략이 아무것도 찾지 못한 것으로 처리합니다.
		return nil
	}

	currency := doc.MetaContent("og:price:currency")
	if currency == "" {
		currency = doc.MetaContent("product:price:currency")
	}

	return &PricePoint{
		Amount:   amount,
		Currency: strings.ToUpper(currency),
	}
}
