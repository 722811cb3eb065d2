package extract

// PricePoint 하나의 추출 전략이 찾아낸 가격 정보입니다.
type PricePoint struct {
	// Amount 추출된 가격입니다.
	Amount float64

	// Currency ISO 4217 통화 코드입니다. 통화를 판별할 수 없으면 빈 문자열입니다.
	Currency string
}

// Strategy HTML 문서에서 가격을 추출하는 단일 전략입니다.
//
// 전략은 고정된 우선순위에 따라 순서대로 시도되며, 가격을 찾은 첫 번째 전략이
// 승리합니다. 각 전략은 입력 문서에 대한 순수 함수이며 공유 상태를 변경하지 않습니다.
type Strategy interface {
	// Name 로깅용 전략 이름을 반환합니다.
	Name() string

	// Attempt 문서에서 가격 추출을 시도합니다. 찾지 못하면 nil을 반환합니다.
	Attempt(doc *Document) *PricePoint
}

// defaultStrategies 기본 전략 목록을 우선순위 순서로 반환합니다.
//
// 구조화 데이터(JSON-LD) > 메타 태그 > 가격 요소 휴리스틱 > 정규식 폴백 순이며,
// 신뢰도가 높은 구조화된 소스를 항상 먼저 소비합니다.
func defaultStrategies() []Strategy {
	return []Strategy{
		&StructuredDataStrategy{},
		&MetaTagStrategy{},
		&PriceElementStrategy{},
		&FallbackScanStrategy{},
	}
}
