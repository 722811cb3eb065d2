package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSpaces(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"빈 문자열", "", ""},
		{"앞뒤 공백 제거", "  hello  ", "hello"},
		{"연속 공백 축약", "hello   world", "hello world"},
		{"탭과 개행 포함", "hello\t\n world", "hello world"},
		{"공백만 있는 문자열", "   \t\n  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSpaces(tt.input))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"짧은 문자열은 그대로 반환", "hello", 10, "hello"},
		{"긴 문자열은 잘라서 반환", "hello world", 5, "hello"},
		{"멀티바이트 문자가 깨지지 않음", "가격비교상품", 2, "가격"},
		{"0 이하의 길이", "hello", 0, ""},
		{"정확히 같은 길이", "hello", 5, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateRunes(tt.input, tt.n))
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitAndTrim("a, , b,c", ","))
	assert.Nil(t, SplitAndTrim("", ","))
	assert.Nil(t, SplitAndTrim(" , , ", ","))
}

func TestMaskSensitiveData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"빈 문자열", "", ""},
		{"3자 이하는 전체 마스킹", "abc", "***"},
		{"12자 이하는 앞 4자만 표시", "abcdefgh", "abcd***"},
		{"긴 토큰은 앞뒤 4자 표시", "1234567890abcdef", "1234***cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskSensitiveData(tt.input))
		})
	}
}

func TestStripHTMLTags(t *testing.T) {
	assert.Equal(t, "Hello & World", StripHTMLTags("<b>Hello</b> &amp; World"))
	assert.Equal(t, "3 < 5", StripHTMLTags("3 < 5"))
	assert.Equal(t, "줄바꿈", StripHTMLTags("줄<br>바꿈"))
}
