// Package handler v1 API의 요청 핸들러를 구현합니다.
package handler

import (
	"context"

	"github.com/darkkaiser/pricepulse-server/internal/service/extract"
	"github.com/darkkaiser/pricepulse-server/internal/service/watch"
)

const component = "api.handler.v1"

// PriceExtractor 상품 페이지에서 상품명과 가격을 추출합니다.
type PriceExtractor interface {
	Extract(ctx context.Context, rawURL string) (*extract.Result, error)
}

// Handler v1 API 요청 핸들러
type Handler struct {
	store     watch.Store
	extractor PriceExtractor
}

// NewHandler v1 API 요청 핸들러를 생성합니다.
func NewHandler(store watch.Store, extractor PriceExtractor) *Handler {
	if store == nil {
		panic("Store 객체가 nil입니다")
	}
	if extractor == nil {
		panic("PriceExtractor 객체가 nil입니다")
	}

	return &Handler{
		store:     store,
		extractor: extractor,
	}
}
