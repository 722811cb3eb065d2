package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	log "github.com/sirupsen/logrus"
)

const (
	// defaultMaxAttempts 기본 최대 시도 횟수입니다. (최초 시도 포함)
	defaultMaxAttempts = 3

	// defaultRetryDelay 선형 백오프의 기준 대기 시간 기본값입니다.
	defaultRetryDelay = 1 * time.Second

	// maxAllowedAttempts 허용 가능한 최대 시도 횟수입니다.
	maxAllowedAttempts = 10
)

// RetryFetcher 요청 실패 시 자동으로 재시도를 수행하는 미들웨어입니다.
//
// 재시도 정책:
//   - 일시적인 오류(서버 오류, 전송 오류, 타임아웃)만 재시도합니다.
//   - 클라이언트 오류([400,500))는 재시도하지 않고 즉시 반환합니다.
//   - 대기 시간은 선형 백오프(기준 대기 시간 × 시도 횟수)를 따르며, 마지막 시도 후에는 대기하지 않습니다.
//   - 모든 시도가 실패하면 마지막으로 발생한 에러를 반환합니다.
type RetryFetcher struct {
	delegate Fetcher

	// maxAttempts 최초 시도를 포함한 최대 시도 횟수입니다.
	maxAttempts int

	// retryDelay 선형 백오프의 기준 대기 시간입니다.
	retryDelay time.Duration
}

var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher 새로운 RetryFetcher 인스턴스를 생성합니다.
// maxAttempts가 1 미만이거나 허용 범위를 벗어나면 기본값으로 보정하고,
// retryDelay가 0 이하이면 기본값(1초)을 사용합니다.
func NewRetryFetcher(delegate Fetcher, maxAttempts int, retryDelay time.Duration) *RetryFetcher {
	if maxAttempts < 1 || maxAttempts > maxAllowedAttempts {
		maxAttempts = defaultMaxAttempts
	}
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	return &RetryFetcher{
		delegate:    delegate,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

// Do HTTP 요청을 수행하고 일시적인 오류에 대해 재시도합니다.
func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		resp, err := f.delegate.Do(req)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetriable(err) {
			return nil, err
		}

		// 마지막 시도 후에는 대기하지 않습니다.
		if attempt == f.maxAttempts {
			break
		}

		delay := f.retryDelay * time.Duration(attempt)

		applog.WithComponentAndFields(component, log.Fields{
			"url":     req.URL.String(),
			"attempt": attempt,
			"delay":   delay.String(),
		}).Warnf("일시적인 오류로 요청을 재시도합니다: %v", err)

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(delay):
		}
	}

	return nil, apperrors.Wrapf(lastErr, apperrors.Unavailable, "%d회 시도 후에도 요청이 실패했습니다", f.maxAttempts)
}

// isRetriable 주어진 에러가 재시도로 해결될 가능성이 있는지 판단합니다.
func isRetriable(err error) bool {
	// 호출자의 취소/타임아웃은 재시도 대상이 아닙니다.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// 클라이언트 오류([400,500))는 재시도해도 결과가 같습니다.
	if apperrors.Is(err, apperrors.ExecutionFailed) || apperrors.Is(err, apperrors.InvalidInput) {
		return false
	}

	// 서버 오류(500 이상)는 일시적 장애로 간주합니다.
	if apperrors.Is(err, apperrors.Unavailable) {
		return true
	}

	// 네트워크 타임아웃은 재시도 대상입니다.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// http.Client.Do가 반환하는 전송 계층 오류(커넥션 거부, DNS 실패 등)는 재시도 대상입니다.
	// 잘못된 URL은 요청 객체 생성 시점에 걸러지므로 여기에 도달하지 않습니다.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	return false
}
