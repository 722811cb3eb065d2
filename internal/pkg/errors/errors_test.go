package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(NotFound, "감시 상품을 찾을 수 없습니다")

	var appErr *AppError
	require.True(t, As(err, &appErr))

	assert.Equal(t, NotFound, appErr.Type())
	assert.Equal(t, "감시 상품을 찾을 수 없습니다", appErr.Message())
	assert.NotEmpty(t, appErr.Stack())
	assert.Equal(t, "[NotFound] 감시 상품을 찾을 수 없습니다", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(InvalidInput, "잘못된 URL입니다: %s", "not-a-url")
	assert.Equal(t, "[InvalidInput] 잘못된 URL입니다: not-a-url", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("nil 에러를 래핑하면 nil을 반환한다", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, Internal, "무시"))
		assert.NoError(t, Wrapf(nil, Internal, "무시 %d", 1))
	})

	t.Run("원인 에러가 에러 메시지와 체인에 포함된다", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := Wrap(cause, System, "페이지 다운로드 실패")

		assert.Equal(t, "[System] 페이지 다운로드 실패: connection refused", err.Error())
		assert.ErrorIs(t, err, cause)
	})
}

func TestIs(t *testing.T) {
	cause := New(ParsingFailed, "숫자 형식 해석 실패")
	err := Wrap(cause, ExecutionFailed, "가격 추출 실패")

	assert.True(t, Is(err, ExecutionFailed))
	assert.True(t, Is(err, ParsingFailed))
	assert.False(t, Is(err, NotFound))
	assert.False(t, Is(nil, NotFound))
}

func TestRootCause(t *testing.T) {
	root := stderrors.New("EOF")
	err := Wrap(Wrap(root, ParsingFailed, "본문 디코딩 실패"), ExecutionFailed, "가격 확인 실패")

	assert.Equal(t, root, RootCause(err))
	assert.Nil(t, RootCause(nil))
}

func TestUnderlyingType(t *testing.T) {
	t.Run("가장 안쪽 AppError의 타입을 반환한다", func(t *testing.T) {
		err := Wrap(New(NotFound, "상품 없음"), Internal, "조회 실패")
		assert.Equal(t, NotFound, UnderlyingType(err))
	})

	t.Run("외부 에러를 감싼 경우 래핑한 타입을 반환한다", func(t *testing.T) {
		err := Wrap(stderrors.New("timeout"), Timeout, "요청 시간 초과")
		assert.Equal(t, Timeout, UnderlyingType(err))
	})

	t.Run("AppError가 없으면 Unknown을 반환한다", func(t *testing.T) {
		assert.Equal(t, Unknown, UnderlyingType(stderrors.New("plain")))
		assert.Equal(t, Unknown, UnderlyingType(nil))
	})
}

func TestFormat(t *testing.T) {
	err := Wrap(stderrors.New("i/o error"), System, "파일 저장 실패")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "[System] 파일 저장 실패")
	assert.Contains(t, detailed, "Stack trace:")
	assert.Contains(t, detailed, "Caused by:")

	quoted := fmt.Sprintf("%q", err)
	assert.Contains(t, quoted, "파일 저장 실패")
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "NotFound", NotFound.String())
	assert.Equal(t, "ParsingFailed", ParsingFailed.String())
	assert.Equal(t, "Unknown", ErrorType(999).String())
}
