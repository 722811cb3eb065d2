package middleware

import (
	"strings"

	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// ValidateContentType 요청의 Content-Type을 검증하는 미들웨어를 반환합니다.
//
// 지정된 Content-Type이 요청 헤더에 포함되어 있는지 검사합니다.
// GET, DELETE 등 본문이 없는 요청은 검증을 건너뜁니다.
// 일치하지 않으면 415 Unsupported Media Type을 반환합니다.
func ValidateContentType(expectedContentType string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Body == nil || c.Request().ContentLength == 0 {
				return next(c)
			}

			contentType := c.Request().Header.Get(echo.HeaderContentType)

			// MIME 타입 파라미터(예: charset=utf-8)를 고려하여 Contains로 검사 (대소문자 무시)
			if contentType == "" || !strings.Contains(strings.ToLower(contentType), strings.ToLower(expectedContentType)) {
				applog.WithComponentAndFields("api.middleware.content_type", log.Fields{
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"method":     c.Request().Method,
					"path":       c.Request().URL.Path,
					"expected":   expectedContentType,
					"actual":     contentType,
					"remote_ip":  c.RealIP(),
				}).Warn("지원하지 않는 Content-Type 요청")

				return ErrUnsupportedMediaType
			}

			return next(c)
		}
	}
}
