// pricepulse-server 상품 가격 감시 서버의 실행 진입점입니다.
//
// 설정 파일을 읽어 API/Watch/Notification 서비스를 구성하고 시작한 뒤,
// SIGINT/SIGTERM 수신 시 모든 서비스가 정리될 때까지 대기합니다.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/pricepulse-server/internal/config"
	"github.com/darkkaiser/pricepulse-server/internal/pkg/version"
	"github.com/darkkaiser/pricepulse-server/internal/service"
	"github.com/darkkaiser/pricepulse-server/internal/service/api"
	"github.com/darkkaiser/pricepulse-server/internal/service/contract"
	"github.com/darkkaiser/pricepulse-server/internal/service/extract"
	"github.com/darkkaiser/pricepulse-server/internal/service/fetch"
	"github.com/darkkaiser/pricepulse-server/internal/service/notification"
	"github.com/darkkaiser/pricepulse-server/internal/service/watch"
	"github.com/darkkaiser/pricepulse-server/internal/service/watch/storage"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	log "github.com/sirupsen/logrus"
)

const component = "main"

const banner = `
  ____       _            ____        _
 |  _ \ _ __(_) ___ ___  |  _ \ _   _| |___  ___
 | |_) | '__| |/ __/ _ \ | |_) | | | | / __|/ _ \
 |  __/| |  | | (_|  __/ |  __/| |_| | \__ \  __/
 |_|   |_|  |_|\___\___| |_|    \__,_|_|___/\___| v%s
--------------------------------------------------------------------------------
`

func main() {
	// 환경설정 정보를 읽어들인다.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "환경설정 정보 읽기가 실패하였습니다: %v\n", err)
		os.Exit(1)
	}

	// 로깅 시스템을 초기화한다.
	logOptions := applog.NewProductionConfig(config.AppName)
	if cfg.Debug {
		logOptions = applog.NewDevelopmentConfig(config.AppName)
	}
	logCloser, err := applog.Setup(logOptions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "로깅 시스템 초기화가 실패하였습니다: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	applog.SetDebugMode(cfg.Debug)

	buildInfo := version.Get()

	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponent(component).Info(buildInfo.String())

	// 설정 파일의 권장 사항 준수 여부를 진단한다.
	for _, warning := range cfg.VerifyRecommendations() {
		applog.WithComponent(component).Warn(warning)
	}

	// 서비스를 생성하고 초기화한다.
	downloader := fetch.NewDownloader(cfg.Fetch.TimeoutDuration(), cfg.Fetch.MaxAttempts, cfg.Fetch.RetryDelayDuration())
	extractor := extract.NewExtractor(downloader)

	store, err := storage.NewFileItemStore(cfg.Watch.DataDir)
	if err != nil {
		applog.WithComponent(component).Fatalf("감시 상품 저장소 초기화가 실패하였습니다: %v", err)
	}

	notificationService := notification.NewService(&cfg.Notifiers)
	watchService := watch.NewService(&cfg.Watch, store, extractor, notificationService, contract.NotifierID(cfg.Notifiers.DefaultNotifierID))
	apiService := api.NewService(cfg, store, extractor, notificationService, notificationService, buildInfo)

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []service.Service{notificationService, watchService, apiService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, log.Fields{
				"error": err,
			}).Error("서비스 시작이 실패하였습니다")

			cancel() // 이미 시작된 서비스들을 종료
			serviceStopWG.Wait()

			applog.WithComponent(component).Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	// SIGINT/SIGTERM 수신 시까지 대기한다.
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	<-termC

	applog.WithComponent(component).Info("종료 신호가 수신되었습니다")

	cancel()
	serviceStopWG.Wait() // 모든 서비스가 정리될 때까지 대기

	applog.WithComponent(component).Info("모든 서비스가 중지되었습니다")
}
