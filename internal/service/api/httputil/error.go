package httputil

import (
	"net/http"

	"github.com/darkkaiser/pricepulse-server/internal/service/api/model/response"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// component 에러 핸들러의 로깅용 컴포넌트 이름
const component = "api.error_handler"

const (
	errMsgInternalServer = "내부 서버 오류가 발생했습니다"
	errMsgNotFound       = "요청한 리소스를 찾을 수 없습니다"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 HTTP 에러를 가로채서 표준 ErrorResponse JSON 형식으로 변환하여 반환하고,
// 상태 코드에 따라 적절한 레벨(Warn/Error)로 상세 정보를 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := errMsgInternalServer

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else if resp, ok := he.Message.(response.ErrorResponse); ok {
			message = resp.Message
		}
	}

	// 존재하지 않는 라우트에 대한 응답은 메시지를 통일합니다.
	if code == http.StatusNotFound && message == http.StatusText(http.StatusNotFound) {
		message = errMsgNotFound
	}

	fields := log.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(component, fields).Error("HTTP 5xx 서버 오류")
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(component, fields).Warn("HTTP 4xx 클라이언트 오류")
	}

	// 이중 응답 방지: 이미 응답이 전송된 경우 추가 응답을 시도하지 않습니다.
	if c.Response().Committed {
		return
	}

	// HEAD 요청은 HTTP 명세에 따라 본문 없이 상태 코드만 반환합니다.
	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
