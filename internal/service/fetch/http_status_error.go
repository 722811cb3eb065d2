package fetch

import (
	"fmt"
)

// HTTPStatusError HTTP 응답이 실패 상태 코드(4xx, 5xx)를 반환했을 때의 상세 정보를 담는 에러입니다.
type HTTPStatusError struct {
	StatusCode int    // HTTP 상태 코드 (예: 404, 503)
	Status     string // HTTP 상태 문자열 (예: "404 Not Found")
	URL        string // 요청한 URL
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP 요청이 실패 상태 코드를 반환했습니다 (status: %s, url: %s)", e.Status, e.URL)
}

// IsClientError 상태 코드가 클라이언트 오류([400,500)) 범위인지 반환합니다.
func (e *HTTPStatusError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError 상태 코드가 서버 오류(500 이상) 범위인지 반환합니다.
func (e *HTTPStatusError) IsServerError() bool {
	return e.StatusCode >= 500
}
