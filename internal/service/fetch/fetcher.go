// Package fetch 상품 페이지 HTML 다운로드를 담당합니다.
//
// Fetcher 인터페이스를 중심으로 User-Agent 설정, HTTP 상태 코드 검사,
// 재시도 등의 기능을 데코레이터 패턴으로 조합하며, Downloader가 이를 묶어
// 문자 인코딩이 처리된 HTML 텍스트를 반환합니다.
package fetch

import (
	"context"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
)

// component 로깅용 컴포넌트 이름
const component = "fetch"

// Fetcher HTTP 요청을 수행하는 핵심 인터페이스입니다.
//
// 구현 시 주의사항:
//   - 반환된 응답 객체의 Body는 반드시 호출자가 닫아야 합니다.
//   - Context 취소 시 즉시 요청을 중단하고 적절한 에러를 반환해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get 지정된 URL로 HTTP GET 요청을 전송하는 헬퍼 함수입니다.
//
// 요청 실패 시 커넥션 재사용을 위해 응답 객체의 Body를 자동으로 읽어서 버리고 닫습니다.
// 성공 시 반환된 응답 객체의 Body는 호출자가 반드시 닫아야 합니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "HTTP 요청 객체 생성이 실패하였습니다 (url: %s)", url)
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}

		return nil, err
	}

	return resp, nil
}

// drainAndCloseBody 응답 Body의 잔여 데이터를 읽어서 버리고 닫습니다.
// Keep-Alive 커넥션이 재사용될 수 있도록 보장합니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64*1024))
	_ = body.Close()
}
