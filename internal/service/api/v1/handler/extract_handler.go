package handler

import (
	"net/http"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/darkkaiser/pricepulse-server/internal/service/api/httputil"
	"github.com/darkkaiser/pricepulse-server/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// ExtractHandler 상품 페이지에서 상품 정보를 즉시 추출하여 반환합니다.
//
// 가격을 찾지 못한 경우에도 추출은 성공한 것이며, 가격과 통화가 null인
// 결과가 반환됩니다. 페이지 다운로드 실패만이 에러로 처리됩니다.
func (h *Handler) ExtractHandler(c echo.Context) error {
	var req request.ExtractRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError("요청 본문의 형식이 올바르지 않습니다")
	}
	if err := validateRequest(&req); err != nil {
		return httputil.NewBadRequestError(err.Error())
	}

	result, err := h.extractor.Extract(c.Request().Context(), req.URL)
	if err != nil {
		applog.WithComponentAndFields(component, log.Fields{
			"url":   req.URL,
			"error": err,
		}).Error("상품 정보 추출이 실패하였습니다")

		if apperrors.Is(err, apperrors.InvalidInput) {
			return httputil.NewBadRequestError(err.Error())
		}
		return httputil.NewBadGatewayError("상품 페이지를 가져올 수 없습니다")
	}

	return c.JSON(http.StatusOK, result)
}
