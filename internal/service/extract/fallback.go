package extract

import (
	"regexp"
	"strings"
)

// fallbackPriceRegexp 통화 기호 뒤에 숫자가 따라오는 모든 표기를 찾습니다.
// 천 단위 구분("1,299.99", "1.299,99", "15.000")과 단순 소수 표기를 모두 허용합니다.
var fallbackPriceRegexp = regexp.MustCompile(
	`(£|€|\$|₺|₽)\s?([0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{1,2})?|[0-9]+(?:[.,][0-9]{1,2})?)`,
)

// noiseTokens 매칭 직전 문맥에 나타나면 해당 가격을 배송비 또는
// 취소선 처리된 과거 가격으로 간주하여 건너뛰는 단어 목록입니다.
var noiseTokens = []string{
	"shipping", "delivery", "postage", "kargo",
	"was ", "old", "rrp", "original",
}

// noiseContextWindow 노이즈 단어를 검사할 매칭 직전 구간의 길이입니다.
const noiseContextWindow = 100

// FallbackScanStrategy 문서 전체를 정규식으로 훑는 최후의 전략입니다.
//
// 통화 기호와 숫자의 조합을 문서 순서대로 검사하되, 매칭 직전 100자 구간에
// 노이즈 단어가 있으면 해당 매칭을 건너뜁니다. 모든 매칭이 노이즈로 걸러졌다면
// 완전한 실패 대신 첫 번째 매칭을 문맥과 무관하게 해석하여 반환합니다.
type FallbackScanStrategy struct{}

var _ Strategy = (*FallbackScanStrategy)(nil)

// Name 전략 이름을 반환합니다.
func (s *FallbackScanStrategy) Name() string { return "regex-fallback" }

// Attempt 문서 전체에서 통화 기호가 붙은 숫자를 찾습니다.
func (s *FallbackScanStrategy) Attempt(doc *Document) *PricePoint {
	matches := fallbackPriceRegexp.FindAllStringSubmatchIndex(doc.RawHTML, -1)
	if len(matches) == 0 {
		return nil
	}

	allNoise := true
	for _, m := range matches {
		if isNoiseContext(doc.RawHTML, m[0]) {
			continue
		}
		allNoise = false

		pp := parseFallbackMatch(doc.RawHTML, m)
		if pp != nil && pp.Amount > 0 {
			return pp
		}
	}

	// 모든 매칭이 노이즈 문맥에 있었을 때에만 첫 번째 매칭으로 대답합니다.
	// 노이즈가 아닌 매칭이 있었으나 해석에 실패한 경우는 가격 미발견으로 처리합니다.
	if !allNoise {
		return nil
	}

	return parseFallbackMatch(doc.RawHTML, matches[0])
}

// isNoiseContext 매칭 시작 위치 직전 구간에 노이즈 단어가 있는지 검사합니다. (대소문자 무시)
func isNoiseContext(html string, matchStart int) bool {
	contextStart := matchStart - noiseContextWindow
	if contextStart < 0 {
		contextStart = 0
	}

	window := strings.ToLower(html[contextStart:matchStart])
	for _, token := range noiseTokens {
		if strings.Contains(window, token) {
			return true
		}
	}
	return false
}

// parseFallbackMatch 정규식 매칭에서 통화 기호와 숫자를 읽어 가격으로 해석합니다.
func parseFallbackMatch(html string, m []int) *PricePoint {
	symbol := html[m[2]:m[3]]
	numberText := html[m[4]:m[5]]

	amount, ok := NormalizePrice(numberText)
	if !ok {
		return nil
	}

	return &PricePoint{
		Amount:   amount,
		Currency: lookupCurrencyCode(symbol),
	}
}
