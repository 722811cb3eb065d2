package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// StructuredDataStrategy JSON-LD 구조화 데이터에서 가격을 추출하는 최우선 전략입니다.
//
// 문서 내의 모든 `<script type="application/ld+json">` 블록을 순서대로 검사하며,
// `@type`이 "Product"이거나 "Product"를 포함하는 객체의 offers 필드에서
// price(없으면 lowPrice)와 priceCurrency를 읽습니다.
// 통화 코드는 선언된 값을 가공 없이 그대로 사용합니다.
type StructuredDataStrategy struct{}

var _ Strategy = (*StructuredDataStrategy)(nil)

// Name 전략 이름을 반환합니다.
func (s *StructuredDataStrategy) Name() string { return "structured-data" }

// Attempt JSON-LD 블록들에서 첫 번째 Product 가격을 찾습니다.
func (s *StructuredDataStrategy) Attempt(doc *Document) *PricePoint {
	var found *PricePoint

	doc.sel.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, block *goquery.Selection) bool {
		payload := strings.TrimSpace(block.Text())

		// 깨진 JSON 블록은 전체 파이프라인을 실패시키지 않고 건너뜁니다.
		if !gjson.Valid(payload) {
			return true
		}

		root := gjson.Parse(payload)

		// 단일 객체는 한 개짜리 목록으로 취급합니다.
		var items []gjson.Result
		switch {
		case root.IsArray():
			items = root.Array()
		case root.IsObject():
			items = []gjson.Result{root}
		default:
			return true
		}

		for _, item := range items {
			// @type은 문자열 또는 문자열 배열일 수 있습니다.
			if !strings.Contains(item.Get("@type").Raw, "Product") {
				continue
			}

			offers := item.Get("offers")
			if offers.IsArray() {
				offerList := offers.Array()
				if len(offerList) == 0 {
					continue
				}
				offers = offerList[0]
			}

			price := offers.Get("price")
			if !price.Exists() {
				price = offers.Get("lowPrice")
			}
			if !price.Exists() {
				continue
			}

			amount, ok := numericValue(price)
			if !ok {
				continue
			}

			found = &PricePoint{
				Amount:   amount,
				Currency: offers.Get("priceCurrency").String(),
			}

			return false
		}

		return true
	})

	return found
}

// numericValue JSON 값(숫자 또는 숫자 문자열)을 실수로 변환합니다.
// 로케일 표기("1.299,99" 등)는 허용하지 않으며 표준 JSON 숫자 형식만 해석합니다.
func numericValue(value gjson.Result) (float64, bool) {
	switch value.Type {
	case gjson.Number:
		return value.Num, true
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
