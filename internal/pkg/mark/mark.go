// Package mark 알림 메시지에 사용되는 이모지 상수를 중앙 관리하는 패키지입니다.
package mark

// Mark 알림 메시지의 성격을 나타내는 이모지 타입입니다.
type Mark string

const (
	// TargetHit 목표 가격 도달
	TargetHit Mark = "🔥"

	// PriceDrop 가격 하락
	PriceDrop Mark = "📉"

	// PriceUp 가격 상승
	PriceUp Mark = "📈"

	// Unavailable 페이지 접근 불가/판매 종료
	Unavailable Mark = "🚫"

	// Alert 긴급/오류
	Alert Mark = "🚨"
)

// WithSpace 마크(이모지) 앞에 구분용 공백을 추가하여 반환합니다.
func (m Mark) WithSpace() string {
	if m == "" {
		return ""
	}
	return " " + string(m)
}

// String 마크의 순수 이모지 값을 문자열로 반환합니다.
func (m Mark) String() string {
	return string(m)
}
