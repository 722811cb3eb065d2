package storage

import (
	"fmt"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
)

// ErrPathTraversalDetected 파일 경로 생성 시 경로 이탈 시도가 감지되었을 때 반환하는 에러입니다.
var ErrPathTraversalDetected = apperrors.New(apperrors.Internal, "보안 정책 위반: 허용되지 않은 경로 접근 시도로 인해 요청이 차단되었습니다")

// NewErrDirectoryAccessFailed 저장소 초기화 시 디렉토리 생성 또는 접근에 실패했을 때 반환하는 에러를 생성합니다.
func NewErrDirectoryAccessFailed(err error, dir string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("저장소 초기화 실패: 디렉토리 접근 불가 (%s)", dir))
}

// NewErrItemReadFailed 감시 상품 파일을 읽는 데 실패했을 때 반환하는 에러를 생성합니다.
func NewErrItemReadFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "감시 상품 조회 실패: 저장된 파일 읽기 중 오류가 발생했습니다")
}

// NewErrItemWriteFailed 감시 상품 파일 저장에 실패했을 때 반환하는 에러를 생성합니다.
func NewErrItemWriteFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "감시 상품 저장 실패: 파일 쓰기 중 오류가 발생했습니다")
}

// NewErrItemDeleteFailed 감시 상품 파일 삭제에 실패했을 때 반환하는 에러를 생성합니다.
func NewErrItemDeleteFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "감시 상품 삭제 실패: 파일 제거 중 오류가 발생했습니다")
}

// NewErrJSONMarshalFailed 감시 상품 직렬화에 실패했을 때 반환하는 에러를 생성합니다.
func NewErrJSONMarshalFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "데이터 처리 실패: 감시 상품 직렬화(JSON Marshal) 중 오류가 발생했습니다")
}

// NewErrJSONUnmarshalFailed 감시 상품 역직렬화에 실패했을 때 반환하는 에러를 생성합니다.
func NewErrJSONUnmarshalFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "데이터 처리 실패: 감시 상품 역직렬화(JSON Unmarshal) 중 오류가 발생했습니다")
}
