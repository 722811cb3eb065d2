package api

import (
	"github.com/darkkaiser/pricepulse-server/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes API 서비스의 전역 라우트를 등록합니다.
//
// 서비스 상태 확인(/health)과 버전 정보(/version) 등
// 인증이 필요 없는 시스템 엔드포인트를 설정합니다.
func RegisterRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)
}
