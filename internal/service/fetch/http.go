package fetch

import (
	"net/http"
	"time"
)

const (
	// defaultTimeout 단일 HTTP 요청의 기본 제한 시간입니다.
	defaultTimeout = 10 * time.Second

	// defaultUserAgent 일부 사이트가 비브라우저 요청을 차단하므로 브라우저와 유사한 User-Agent를 사용합니다.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// HTTPFetcher 표준 http.Client를 감싸는 가장 안쪽 단계의 Fetcher 구현체입니다.
// User-Agent가 설정되지 않은 요청에 브라우저형 User-Agent를 부여합니다.
type HTTPFetcher struct {
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 지정된 제한 시간을 갖는 HTTPFetcher를 생성합니다.
// timeout이 0 이하이면 기본값(10초)을 사용합니다.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do HTTP 요청을 수행합니다.
func (f *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", defaultUserAgent)
	}

	return f.client.Do(req)
}
