// Package v1 v1 API의 라우팅을 정의합니다.
package v1

import (
	"github.com/darkkaiser/pricepulse-server/internal/service/api/auth"
	"github.com/darkkaiser/pricepulse-server/internal/service/api/middleware"
	"github.com/darkkaiser/pricepulse-server/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes v1 API의 라우팅 정보를 등록합니다.
//
// 모든 v1 엔드포인트는 애플리케이션 인증을 요구하며, 본문이 있는 요청은
// JSON Content-Type 검사를 거칩니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, authenticator *auth.Authenticator) {
	g := e.Group("/api/v1",
		middleware.RequireAuthentication(authenticator),
		middleware.ValidateContentType(echo.MIMEApplicationJSON),
	)

	g.POST("/items", h.CreateItemHandler)
	g.GET("/items", h.ListItemsHandler)
	g.GET("/items/:item_id", h.GetItemHandler)
	g.PATCH("/items/:item_id", h.UpdateItemHandler)
	g.DELETE("/items/:item_id", h.DeleteItemHandler)

	g.POST("/extract", h.ExtractHandler)
}
