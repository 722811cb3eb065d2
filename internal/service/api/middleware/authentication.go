package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/darkkaiser/pricepulse-server/internal/service/api/auth"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// componentAuth 인증 미들웨어의 로깅용 컴포넌트 이름
const componentAuth = "api.middleware.auth"

const (
	// headerXAppKey 애플리케이션 인증용 HTTP 헤더 키 (권장 방식)
	headerXAppKey = "X-App-Key"

	// headerXApplicationID 애플리케이션 식별용 HTTP 헤더 키
	// 이 헤더가 존재하면 Body 파싱을 건너뛰고 헤더 값으로 인증합니다.
	// GET, DELETE 등 본문이 없는 요청은 반드시 이 헤더를 사용해야 합니다.
	headerXApplicationID = "X-Application-Id"
)

// RequireAuthentication 애플리케이션 인증을 수행하는 미들웨어를 반환합니다.
//
// 처리 과정:
//  1. App Key 추출 (X-App-Key 헤더 우선, app_key 쿼리 파라미터 폴백)
//  2. Application ID 추출 (X-Application-Id 헤더 우선, Body의 application_id 폴백)
//  3. Authenticator를 통한 인증 처리
//  4. 인증된 Application 객체를 Context에 저장
//
// 인증 실패 시:
//   - 400 Bad Request: App Key/Application ID 누락, 잘못된 JSON
//   - 401 Unauthorized: 미등록 Application ID 또는 잘못된 App Key
//   - 413 Request Entity Too Large: 요청 크기가 제한을 초과함 (BodyLimit)
//
// Panics:
//   - authenticator가 nil인 경우
func RequireAuthentication(authenticator *auth.Authenticator) echo.MiddlewareFunc {
	if authenticator == nil {
		panic("Authenticator는 필수입니다")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			appKey := extractAppKey(c)
			if appKey == "" {
				return ErrAppKeyRequired
			}

			applicationID, err := extractApplicationID(c)
			if err != nil {
				return err
			}
			if applicationID == "" {
				return ErrApplicationIDRequired
			}

			app, err := authenticator.Authenticate(applicationID, appKey)
			if err != nil {
				return err
			}

			auth.SetApplication(c, app)

			return next(c)
		}
	}
}

// extractAppKey App Key를 추출합니다.
// X-App-Key 헤더를 우선하며, 없으면 app_key 쿼리 파라미터를 사용합니다(레거시).
func extractAppKey(c echo.Context) string {
	appKey := c.Request().Header.Get(headerXAppKey)
	if appKey == "" {
		appKey = c.QueryParam(auth.QueryParamAppKey)

		if appKey != "" {
			applog.WithComponentAndFields(componentAuth, log.Fields{
				"method":    c.Request().Method,
				"path":      c.Path(),
				"remote_ip": c.RealIP(),
			}).Warn("보안 경고: 쿼리 파라미터로 App Key 전달됨 (헤더 사용 권장)")
		}
	}
	return appKey
}

// extractApplicationID Application ID를 추출합니다.
//
// X-Application-Id 헤더를 우선합니다. HTTP Body는 스트림이므로 미들웨어에서 읽으면
// 소모되어 사라지고, 복원에는 전체 데이터의 메모리 복사가 필요합니다. 헤더가 없는
// 경우에만 불가피하게 Body를 파싱하고 다음 핸들러를 위해 복원합니다.
func extractApplicationID(c echo.Context) (string, error) {
	applicationID := c.Request().Header.Get(headerXApplicationID)
	if applicationID != "" {
		return applicationID, nil
	}

	if c.Request().Body == nil || c.Request().ContentLength == 0 {
		return "", nil
	}

	bodyBytes, err := io.ReadAll(c.Request().Body)
	if err != nil {
		// BodyLimit 미들웨어 또는 http.MaxBytesReader에 의해 본문 크기가 제한된 경우
		// 표준 413 에러로 정규화합니다.
		if _, ok := err.(*http.MaxBytesError); ok {
			return "", ErrBodyTooLarge
		}
		if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusRequestEntityTooLarge {
			return "", ErrBodyTooLarge
		}
		return "", ErrBodyReadFailed
	}
	c.Request().Body.Close()

	// Body 복원 (다음 핸들러에서 사용 가능하도록)
	c.Request().Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var authRequest struct {
		ApplicationID string `json:"application_id"`
	}
	if err := json.Unmarshal(bodyBytes, &authRequest); err != nil {
		return "", ErrInvalidJSON
	}

	return authRequest.ApplicationID, nil
}
