package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/darkkaiser/pricepulse-server/internal/service/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHandler_상품정보추출(t *testing.T) {
	h := NewHandler(newMemoryStore(), &stubExtractor{result: &extract.Result{
		Store:        "example.com",
		ProductName:  "게이밍 마우스",
		CurrentPrice: floatPtr(45.99),
		CurrencyCode: strPtr("USD"),
	}})

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/extract",
		`{"application_id":"test-app","url":"https://example.com/p/1"}`)

	require.NoError(t, h.ExtractHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result extract.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "게이밍 마우스", result.ProductName)
	require.NotNil(t, result.CurrentPrice)
	assert.Equal(t, 45.99, *result.CurrentPrice)
}

// 가격을 찾지 못한 결과도 정상 응답이며, 가격과 통화가 null로 직렬화되어야 한다.
func TestExtractHandler_가격미발견은정상응답(t *testing.T) {
	h := NewHandler(newMemoryStore(), &stubExtractor{result: &extract.Result{
		Store:       "example.com",
		ProductName: "example.com",
	}})

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/extract",
		`{"application_id":"test-app","url":"https://example.com/p/1"}`)

	require.NoError(t, h.ExtractHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "null", string(raw["current_price"]))
	assert.Equal(t, "null", string(raw["currency_code"]))
}

func TestExtractHandler_다운로드실패(t *testing.T) {
	h := NewHandler(newMemoryStore(), &stubExtractor{
		err: apperrors.New(apperrors.Unavailable, "페이지 다운로드가 실패하였습니다"),
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/extract",
		`{"application_id":"test-app","url":"https://example.com/p/1"}`)

	assertHTTPError(t, h.ExtractHandler(c), http.StatusBadGateway)
}

func TestExtractHandler_잘못된URL(t *testing.T) {
	h := NewHandler(newMemoryStore(), &stubExtractor{
		err: apperrors.New(apperrors.InvalidInput, "URL 형식이 올바르지 않습니다"),
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/extract",
		`{"application_id":"test-app","url":"https://example.com/p/1"}`)

	assertHTTPError(t, h.ExtractHandler(c), http.StatusBadRequest)
}

func TestExtractHandler_URL누락(t *testing.T) {
	h := NewHandler(newMemoryStore(), &stubExtractor{})

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/extract",
		`{"application_id":"test-app"}`)

	assertHTTPError(t, h.ExtractHandler(c), http.StatusBadRequest)
}
