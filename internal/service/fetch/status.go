package fetch

import (
	"net/http"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
)

// StatusCodeFetcher HTTP 응답의 상태 코드를 검사하여 실패 상태를 에러로 변환하는 미들웨어입니다.
//
// 변환 정책:
//   - [400,500) 클라이언트 오류: 재시도해도 결과가 달라지지 않으므로 ExecutionFailed로 분류합니다.
//   - 500 이상 서버 오류: 일시적 장애일 수 있으므로 Unavailable로 분류하여 재시도 대상으로 표시합니다.
//
// 에러 변환 시 응답 Body는 커넥션 재사용을 위해 비우고 닫으며, nil 응답을 반환합니다.
type StatusCodeFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher 새로운 StatusCodeFetcher 인스턴스를 생성합니다.
func NewStatusCodeFetcher(delegate Fetcher) *StatusCodeFetcher {
	return &StatusCodeFetcher{delegate: delegate}
}

// Do HTTP 요청을 수행하고 실패 상태 코드를 에러로 변환합니다.
func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode >= 400 {
		statusErr := &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        req.URL.String(),
		}

		drainAndCloseBody(resp.Body)

		if statusErr.IsClientError() {
			return nil, apperrors.Wrap(statusErr, apperrors.ExecutionFailed, "원격 서버가 클라이언트 오류를 반환했습니다")
		}
		return nil, apperrors.Wrap(statusErr, apperrors.Unavailable, "원격 서버가 일시적으로 요청을 처리할 수 없습니다")
	}

	return resp, nil
}
