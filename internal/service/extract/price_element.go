package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// priceAttributeHints 가격 요소임을 암시하는 속성 값 키워드입니다.
var priceAttributeHints = []string{"price", "amount", "cost"}

// PriceElementStrategy 가격 표시용 요소의 관례적인 속성 이름에 의존하는 휴리스틱 전략입니다.
//
// class, id, itemprop 속성 값에 price/amount/cost가 포함된 요소를 문서 순서대로 찾고,
// 그 요소의 여는 태그 바로 뒤에 오는 텍스트에 통화 기호가 있으면 가격으로 해석을 시도합니다.
type PriceElementStrategy struct{}

var _ Strategy = (*PriceElementStrategy)(nil)

// Name 전략 이름을 반환합니다.
func (s *PriceElementStrategy) Name() string { return "price-element" }

// Attempt 가격 요소로 추정되는 태그들에서 가격을 찾습니다.
func (s *PriceElementStrategy) Attempt(doc *Document) *PricePoint {
	var found *PricePoint

	doc.sel.Find("[class],[id],[itemprop]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if !hasPriceHint(el) {
			return true
		}

		text := immediateText(el)
		if text == "" || lookupCurrencyCode(text) == "" {
			return true
		}

		amount, currency, ok := ParsePriceText(text)
		if !ok {
			return true
		}

		found = &PricePoint{Amount: amount, Currency: currency}
		return false
	})

	return found
}

// hasPriceHint 요소의 class/id/itemprop 속성에 가격 키워드가 포함되어 있는지 검사합니다. (대소문자 무시)
func hasPriceHint(el *goquery.Selection) bool {
	for _, attrName := range []string{"class", "id", "itemprop"} {
		value, exists := el.Attr(attrName)
		if !exists {
			continue
		}

		value = strings.ToLower(value)
		for _, hint := range priceAttributeHints {
			if strings.Contains(value, hint) {
				return true
			}
		}
	}
	return false
}

// immediateText 요소의 여는 태그 바로 뒤에 오는 텍스트(첫 번째 자식 텍스트 노드)를 반환합니다.
// 자식 요소 내부의 텍스트는 포함하지 않습니다.
func immediateText(el *goquery.Selection) string {
	if len(el.Nodes) == 0 {
		return ""
	}

	child := el.Nodes[0].FirstChild
	if child == nil || child.Type != html.TextNode {
		return ""
	}

	return child.Data
}
