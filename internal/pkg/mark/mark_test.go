package mark

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// 정의된 모든 마크 상수의 무결성을 검증합니다.
//   - 빈 문자열이 아닐 것
//   - 선행 공백을 포함하지 않을 것 (표현용 공백은 WithSpace()가 담당)
//   - 올바른 UTF-8 인코딩일 것
func TestMarks_상수무결성(t *testing.T) {
	allMarks := []Mark{TargetHit, PriceDrop, PriceUp, Unavailable, Alert}

	for _, m := range allMarks {
		t.Run(string(m), func(t *testing.T) {
			assert.NotEmpty(t, m)
			assert.False(t, strings.HasPrefix(string(m), " "))
			assert.True(t, utf8.ValidString(string(m)))
		})
	}
}

func TestMark_WithSpace(t *testing.T) {
	tests := []struct {
		name string
		mark Mark
		want string
	}{
		{"목표가격도달", TargetHit, " 🔥"},
		{"긴급오류", Alert, " 🚨"},
		{"빈마크는공백없음", Mark(""), ""},
		{"임의텍스트마크", Mark("TEST"), " TEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mark.WithSpace())
		})
	}
}

func TestMark_String(t *testing.T) {
	var _ fmt.Stringer = TargetHit

	assert.Equal(t, "🔥", TargetHit.String())
	assert.Equal(t, "🚨", fmt.Sprintf("%s", Alert))
	assert.Equal(t, "", Mark("").String())
}
