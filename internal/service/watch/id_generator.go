package watch

import (
	"sync/atomic"
	"time"
)

// ItemID 감시 상품의 고유 식별자입니다.
type ItemID string

// base62Chars Base62 인코딩 문자셋입니다. ASCII 코드 순서를 따르므로
// 생성된 ID의 사전순 정렬이 시간순 정렬과 대체로 일치합니다.
const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const base62Len = int64(len(base62Chars))

// sequenceDigits 동일 나노초 내 순번을 표현하는 고정 자릿수입니다.
const sequenceDigits = 6

// idGenerator 감시 상품 ID 생성을 담당합니다.
//
// 나노초 타임스탬프를 Base62로 인코딩한 값에 원자적 카운터를 결합하여
// 동일 나노초 내에서도 중복 없는 ID를 생성합니다. 여러 고루틴에서 동시에 호출해도 안전합니다.
type idGenerator struct {
	counter uint32
}

var defaultIDGenerator = &idGenerator{}

// New 새로운 ItemID를 생성합니다.
//
// ID 구조: [타임스탬프(Base62)][시퀀스(Base62, 6자리 고정)]
// 시퀀스를 고정 길이로 패딩하여 자릿수 차이로 인한 정렬 오류를 방지합니다.
func (g *idGenerator) New() ItemID {
	now := time.Now().UnixNano()
	seq := atomic.AddUint32(&g.counter, 1)

	return ItemID("item-" + encodeBase62(now) + encodeBase62Fixed(int64(seq), sequenceDigits))
}

// encodeBase62 양의 정수를 Base62 문자열로 인코딩합니다.
func encodeBase62(n int64) string {
	if n <= 0 {
		return string(base62Chars[0])
	}

	var buf [16]byte
	pos := len(buf)

	for n > 0 {
		pos--
		buf[pos] = base62Chars[n%base62Len]
		n /= base62Len
	}

	return string(buf[pos:])
}

// encodeBase62Fixed 정수를 고정 자릿수의 Base62 문자열로 인코딩합니다.
// 자릿수를 초과하는 상위 비트는 버려지지만, 타임스탬프와 결합되므로 실질적 충돌 위험은 없습니다.
func encodeBase62Fixed(n int64, digits int) string {
	buf := make([]byte, digits)

	for i := digits - 1; i >= 0; i-- {
		buf[i] = base62Chars[n%base62Len]
		n /= base62Len
	}

	return string(buf)
}
