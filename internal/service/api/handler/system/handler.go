// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 인증이 필요 없는 시스템 수준의 API를 처리합니다.
package system

import (
	"net/http"
	"time"

	"github.com/darkkaiser/pricepulse-server/internal/pkg/version"
	"github.com/darkkaiser/pricepulse-server/internal/service/api/model/system"
	"github.com/darkkaiser/pricepulse-server/internal/service/contract"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// component 시스템 핸들러의 로깅용 컴포넌트 이름
const component = "api.handler.system"

const (
	healthStatusHealthy   = "healthy"
	healthStatusUnhealthy = "unhealthy"

	// dependencyNotificationService 외부 의존성 ID: 알림 서비스
	dependencyNotificationService = "notification_service"
)

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	healthChecker contract.NotificationHealthChecker

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(healthChecker contract.NotificationHealthChecker, buildInfo version.Info) *Handler {
	if healthChecker == nil {
		panic("HealthChecker는 필수입니다")
	}

	return &Handler{
		healthChecker: healthChecker,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler 서버와 외부 의존성의 상태를 반환합니다.
// 인증 없이 호출 가능하며, 모니터링 시스템에서 사용됩니다.
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(component, log.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	uptime := int64(time.Since(h.serverStartTime).Seconds())

	deps := make(map[string]system.DependencyStatus)

	if err := h.healthChecker.Health(); err != nil {
		deps[dependencyNotificationService] = system.DependencyStatus{
			Status:  healthStatusUnhealthy,
			Message: err.Error(),
		}
	} else {
		deps[dependencyNotificationService] = system.DependencyStatus{
			Status:  healthStatusHealthy,
			Message: "정상 작동 중",
		}
	}

	// 하나라도 unhealthy면 전체 상태를 unhealthy로 설정
	serverStatus := healthStatusHealthy
	for _, dep := range deps {
		if dep.Status != healthStatusHealthy {
			serverStatus = healthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Uptime:       uptime,
		Dependencies: deps,
	})
}

// VersionHandler 서버의 버전, 커밋 해시, 빌드 날짜, Go 버전을 반환합니다.
func (h *Handler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:   h.buildInfo.Version,
		Commit:    h.buildInfo.Commit,
		BuildDate: h.buildInfo.BuildDate,
		GoVersion: h.buildInfo.GoVersion,
	})
}
