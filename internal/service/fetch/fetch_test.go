package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_기본UserAgent설정(t *testing.T) {
	var gotUserAgent string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	f := NewHTTPFetcher(0)

	resp, err := Get(context.Background(), f, ts.URL)
	require.NoError(t, err)
	drainAndCloseBody(resp.Body)

	assert.Equal(t, defaultUserAgent, gotUserAgent)
}

func TestHTTPFetcher_사용자UserAgent유지(t *testing.T) {
	var gotUserAgent string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	f := NewHTTPFetcher(0)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom-agent/1.0")

	resp, err := f.Do(req)
	require.NoError(t, err)
	drainAndCloseBody(resp.Body)

	assert.Equal(t, "custom-agent/1.0", gotUserAgent)
}

func TestStatusCodeFetcher_클라이언트오류(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer ts.Close()

	f := NewStatusCodeFetcher(NewHTTPFetcher(0))

	resp, err := Get(context.Background(), f, ts.URL)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestStatusCodeFetcher_서버오류(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	f := NewStatusCodeFetcher(NewHTTPFetcher(0))

	resp, err := Get(context.Background(), f, ts.URL)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
}

func TestRetryFetcher_서버오류재시도후실패(t *testing.T) {
	var requestCount atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	f := NewRetryFetcher(NewStatusCodeFetcher(NewHTTPFetcher(0)), 3, 1*time.Millisecond)

	resp, err := Get(context.Background(), f, ts.URL)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
	assert.Contains(t, err.Error(), "3회 시도 후에도 요청이 실패했습니다")
	assert.Equal(t, int32(3), requestCount.Load())
}

func TestRetryFetcher_클라이언트오류즉시실패(t *testing.T) {
	var requestCount atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer ts.Close()

	f := NewRetryFetcher(NewStatusCodeFetcher(NewHTTPFetcher(0)), 3, 1*time.Millisecond)

	resp, err := Get(context.Background(), f, ts.URL)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
	assert.Equal(t, int32(1), requestCount.Load(), "클라이언트 오류는 재시도하지 않아야 합니다")
}

func TestRetryFetcher_일시적오류후성공(t *testing.T) {
	var requestCount atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestCount.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	f := NewRetryFetcher(NewStatusCodeFetcher(NewHTTPFetcher(0)), 3, 1*time.Millisecond)

	resp, err := Get(context.Background(), f, ts.URL)
	require.NoError(t, err)
	drainAndCloseBody(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), requestCount.Load())
}

func TestRetryFetcher_대기중취소(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	f := NewRetryFetcher(NewStatusCodeFetcher(NewHTTPFetcher(0)), 3, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Get(ctx, f, ts.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRetryFetcher_인자보정(t *testing.T) {
	f := NewRetryFetcher(NewHTTPFetcher(0), 0, -1)
	assert.Equal(t, defaultMaxAttempts, f.maxAttempts)
	assert.Equal(t, defaultRetryDelay, f.retryDelay)

	f = NewRetryFetcher(NewHTTPFetcher(0), maxAllowedAttempts+1, time.Second)
	assert.Equal(t, defaultMaxAttempts, f.maxAttempts)
}

func TestDownloader_UTF8다운로드(t *testing.T) {
	const body = `<html><head><title>테스트 상품</title></head><body>₩12,345</body></html>`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	d := NewDownloader(0, 1, 1*time.Millisecond)

	html, err := d.Download(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, body, html)
}

func TestDownloader_EUCKR디코딩(t *testing.T) {
	// "가격"의 EUC-KR 인코딩 바이트
	eucKRBody := append([]byte(`<html><body>`), 0xB0, 0xA1, 0xB0, 0xDD)
	eucKRBody = append(eucKRBody, []byte(`</body></html>`)...)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=euc-kr")
		_, _ = w.Write(eucKRBody)
	}))
	defer ts.Close()

	d := NewDownloader(0, 1, 1*time.Millisecond)

	html, err := d.Download(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "가격"))
}

func TestDownloader_메타태그인코딩판별(t *testing.T) {
	// Content-Type 헤더에 charset이 없어도 본문의 meta 태그로 인코딩을 판별합니다.
	eucKRBody := append([]byte(`<html><head><meta charset="euc-kr"></head><body>`), 0xB0, 0xA1, 0xB0, 0xDD)
	eucKRBody = append(eucKRBody, []byte(`</body></html>`)...)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(eucKRBody)
	}))
	defer ts.Close()

	d := NewDownloader(0, 1, 1*time.Millisecond)

	html, err := d.Download(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "가격"))
}

func TestDownloader_다운로드실패전파(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	d := NewDownloader(0, 2, 1*time.Millisecond)

	html, err := d.Download(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Empty(t, html)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
}

func TestGet_잘못된URL(t *testing.T) {
	_, err := Get(context.Background(), NewHTTPFetcher(0), "http://[::1]:namedport")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}
