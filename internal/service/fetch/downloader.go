package fetch

import (
	"bufio"
	"context"
	"io"
	"time"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// maxBodySize 다운로드할 HTML 본문의 최대 크기입니다. (악의적인 대용량 응답 방어)
const maxBodySize = 10 * 1024 * 1024

// Downloader 상품 페이지의 HTML 텍스트를 다운로드합니다.
//
// 내부적으로 User-Agent 설정, 상태 코드 검사, 재시도 미들웨어가 조합된
// Fetcher 체인을 사용하며, 응답 본문은 선언된 문자 인코딩(기본: UTF-8)으로
// 디코딩하여 반환합니다. 디코딩할 수 없는 바이트는 요청을 실패시키지 않고 치환됩니다.
type Downloader struct {
	fetcher Fetcher
}

// NewDownloader 기본 Fetcher 체인(HTTP → 상태 코드 검사 → 재시도)으로 구성된 Downloader를 생성합니다.
func NewDownloader(timeout time.Duration, maxAttempts int, retryDelay time.Duration) *Downloader {
	return &Downloader{
		fetcher: NewRetryFetcher(
			NewStatusCodeFetcher(
				NewHTTPFetcher(timeout),
			),
			maxAttempts,
			retryDelay,
		),
	}
}

// NewDownloaderWithFetcher 지정된 Fetcher를 사용하는 Downloader를 생성합니다. (테스트용)
func NewDownloaderWithFetcher(fetcher Fetcher) *Downloader {
	return &Downloader{fetcher: fetcher}
}

// Download 지정된 URL의 HTML 텍스트를 다운로드합니다.
//
// 모든 재시도가 실패하거나 클라이언트 오류가 발생하면 마지막 에러를 그대로 반환하며,
// 빈 문자열로 대체하지 않습니다.
func (d *Downloader) Download(ctx context.Context, pageURL string) (string, error) {
	resp, err := Get(ctx, d.fetcher, pageURL)
	if err != nil {
		return "", err
	}
	defer drainAndCloseBody(resp.Body)

	// 응답 헤더와 본문 앞부분을 함께 참고하여 문자 인코딩을 판별합니다.
	bufReader := bufio.NewReader(io.LimitReader(resp.Body, maxBodySize))
	peekBytes, _ := bufReader.Peek(1024)

	contentType := resp.Header.Get("Content-Type")
	e, encodingName, _ := charset.DetermineEncoding(peekBytes, contentType)

	applog.WithComponentAndFields(component, log.Fields{
		"url":      pageURL,
		"encoding": encodingName,
	}).Debug("상품 페이지 다운로드 완료")

	decoded, err := io.ReadAll(e.NewDecoder().Reader(bufReader))
	if err != nil {
		return "", apperrors.Wrapf(err, apperrors.System, "응답 본문을 읽는 중 오류가 발생했습니다 (url: %s)", pageURL)
	}

	return string(decoded), nil
}
