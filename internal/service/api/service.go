// Package api 감시 상품 관리와 상품 정보 추출을 제공하는 HTTP API 서비스입니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/darkkaiser/pricepulse-server/internal/config"
	"github.com/darkkaiser/pricepulse-server/internal/pkg/version"
	"github.com/darkkaiser/pricepulse-server/internal/service"
	"github.com/darkkaiser/pricepulse-server/internal/service/api/auth"
	"github.com/darkkaiser/pricepulse-server/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/pricepulse-server/internal/service/api/v1"
	v1handler "github.com/darkkaiser/pricepulse-server/internal/service/api/v1/handler"
	"github.com/darkkaiser/pricepulse-server/internal/service/contract"
	"github.com/darkkaiser/pricepulse-server/internal/service/watch"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const component = "api"

// shutdownTimeout HTTP 서버 정상 종료 대기 시간
const shutdownTimeout = 5 * time.Second

// Service HTTP API 서비스
type Service struct {
	cfg *config.AppConfig

	store     watch.Store
	extractor v1handler.PriceExtractor

	notificationSender contract.NotificationSender
	healthChecker      contract.NotificationHealthChecker

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// Service 인터페이스 구현 여부 검증
var _ service.Service = (*Service)(nil)

// NewService API 서비스를 생성합니다.
func NewService(cfg *config.AppConfig, store watch.Store, extractor v1handler.PriceExtractor, notificationSender contract.NotificationSender, healthChecker contract.NotificationHealthChecker, buildInfo version.Info) *Service {
	if cfg == nil {
		panic("AppConfig 객체가 nil입니다")
	}
	if store == nil {
		panic("Store 객체가 nil입니다")
	}
	if extractor == nil {
		panic("PriceExtractor 객체가 nil입니다")
	}
	if notificationSender == nil {
		panic("NotificationSender 객체가 nil입니다")
	}
	if healthChecker == nil {
		panic("NotificationHealthChecker 객체가 nil입니다")
	}

	return &Service{
		cfg: cfg,

		store:     store,
		extractor: extractor,

		notificationSender: notificationSender,
		healthChecker:      healthChecker,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Debug("API 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()

		applog.WithComponent(component).Warn("API 서비스가 이미 시작되었습니다")
		return nil
	}

	e := s.setupServer()

	httpServerDone := make(chan error, 1)
	go s.startHTTPServer(e, httpServerDone)
	go s.waitForShutdown(serviceStopCtx, serviceStopWG, e, httpServerDone)

	s.running = true

	applog.WithComponent(component).Info("API 서비스 시작됨")

	return nil
}

// setupServer 라우트가 설정된 HTTP 서버를 생성합니다.
func (s *Service) setupServer() *echo.Echo {
	e := NewHTTPServer(HTTPServerConfig{
		Debug:        s.cfg.Debug,
		AllowOrigins: s.cfg.API.CORS.AllowOrigins,
	})

	authenticator := auth.NewAuthenticator(&s.cfg.API)

	RegisterRoutes(e, system.NewHandler(s.healthChecker, s.buildInfo))
	v1.RegisterRoutes(e, v1handler.NewHandler(s.store, s.extractor), authenticator)

	return e
}

// startHTTPServer HTTP 서버를 시작하고, 서버가 종료되면 그 결과를 채널로 전달합니다.
func (s *Service) startHTTPServer(e *echo.Echo, httpServerDone chan<- error) {
	listenAddr := fmt.Sprintf(":%d", s.cfg.API.WS.ListenPort)

	applog.WithComponentAndFields(component, log.Fields{
		"listen_addr": listenAddr,
		"tls":         s.cfg.API.WS.TLSServer,
	}).Info("HTTP 서버 시작")

	var err error
	if s.cfg.API.WS.TLSServer {
		err = e.StartTLS(listenAddr, s.cfg.API.WS.TLSCertFile, s.cfg.API.WS.TLSKeyFile)
	} else {
		err = e.Start(listenAddr)
	}

	httpServerDone <- err
}

// waitForShutdown 서비스 중지 신호나 HTTP 서버의 비정상 종료를 대기합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo, httpServerDone <-chan error) {
	defer serviceStopWG.Done()
	defer s.cleanup()

	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(component).Debug("API 서비스 중지중...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			applog.WithComponentAndFields(component, log.Fields{
				"error": err,
			}).Error("HTTP 서버 종료가 실패하였습니다")
		}

		// Shutdown 호출 후 Start/StartTLS가 반환될 때까지 대기합니다.
		s.handleServerError(<-httpServerDone)

		applog.WithComponent(component).Info("API 서비스 중지됨")

	case err := <-httpServerDone:
		s.handleServerError(err)
	}
}

// handleServerError HTTP 서버의 종료 원인을 분류하여 처리합니다.
//
// 정상 종료(http.ErrServerClosed)가 아닌 경우 에러를 기록하고
// 기본 알림 채널로 발송합니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(component).Debug("HTTP 서버가 정상 종료되었습니다")
		return
	}

	applog.WithComponentAndFields(component, log.Fields{
		"error": err,
	}).Error("HTTP 서버 실행이 실패하였습니다")

	if notifyErr := s.notificationSender.NotifyDefaultWithError(fmt.Sprintf("HTTP 서버 실행이 실패하였습니다.\n\n%s", err)); notifyErr != nil {
		applog.WithComponentAndFields(component, log.Fields{
			"error": notifyErr,
		}).Error("HTTP 서버 오류 알림 발송이 실패하였습니다")
	}
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()
}
