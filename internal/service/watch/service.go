// Package watch 등록된 감시 상품의 가격을 주기적으로 확인하는 서비스입니다.
//
// Cron 스케줄에 따라 활성(ACTIVE) 상품 전체를 순회하며 가격을 추출하고,
// 현재 가격이 목표 가격 이하로 내려간 상품은 TARGET_HIT 상태로 전이시킨 뒤
// 알림을 발송합니다.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/pricepulse-server/internal/config"
	"github.com/darkkaiser/pricepulse-server/internal/pkg/mark"
	"github.com/darkkaiser/pricepulse-server/internal/service/contract"
	"github.com/darkkaiser/pricepulse-server/internal/service/extract"
	"github.com/darkkaiser/pricepulse-server/pkg/cronx"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	log "github.com/sirupsen/logrus"
	"github.com/robfig/cron/v3"
)

// component Watch 서비스의 로깅용 컴포넌트 이름
const component = "watch.service"

// checkTimeout 단일 상품의 가격 확인에 허용하는 최대 시간입니다.
const checkTimeout = 2 * time.Minute

// PriceExtractor 상품 페이지에서 가격 정보를 추출하는 인터페이스입니다.
type PriceExtractor interface {
	Extract(ctx context.Context, url string) (*extract.Result, error)
}

// Service 감시 상품의 가격 확인을 스케줄링하고 실행하는 서비스입니다.
type Service struct {
	cfg *config.WatchConfig

	store     Store
	extractor PriceExtractor

	// notificationSender 목표 가격 도달 알림 발송을 담당합니다.
	notificationSender contract.NotificationSender

	// defaultNotifierID 알림 발송에 사용할 기본 Notifier의 식별자입니다.
	defaultNotifierID contract.NotifierID

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Watch 서비스 인스턴스를 생성합니다.
func NewService(cfg *config.WatchConfig, store Store, extractor PriceExtractor, sender contract.NotificationSender, defaultNotifierID contract.NotifierID) *Service {
	if cfg == nil {
		panic("WatchConfig는 필수입니다")
	}
	if store == nil {
		panic("Store는 필수입니다")
	}
	if extractor == nil {
		panic("PriceExtractor는 필수입니다")
	}
	if sender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Service{
		cfg: cfg,

		store:     store,
		extractor: extractor,

		notificationSender: sender,

		defaultNotifierID: defaultNotifierID,
	}
}

// Start 가격 확인 스케줄을 Cron 엔진에 등록하고 서비스를 시작합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Watch 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Watch 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	if !s.cfg.Scheduler.Runnable {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Watch 스케줄러가 비활성화되어 있어 주기적인 가격 확인을 수행하지 않습니다")
		return nil
	}

	// Cron 엔진 초기화
	// - StandardParser: 초 단위 스케줄링 지원 (6개 필드)
	// - Recover: 가격 확인 도중 패닉이 발생해도 다음 스케줄에 영향을 주지 않음
	// - SkipIfStillRunning: 이전 확인이 끝나지 않았으면 이번 회차를 건너뜀
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	_, err := s.cron.AddFunc(s.cfg.Scheduler.TimeSpec, func() {
		// 가격 확인의 생명주기를 서비스 종료 시그널과 분리합니다.
		// Graceful Shutdown 시 cron.Stop()이 실행 중인 확인 작업의 완료를 대기하므로,
		// 확인 도중 컨텍스트 취소로 인한 어중간한 상태 저장을 방지합니다.
		s.CheckAll(context.Background())
	})
	if err != nil {
		serviceStopWG.Done()
		return fmt.Errorf("가격 확인 스케줄 등록이 실패하였습니다 (time_spec: %s): %w", s.cfg.Scheduler.TimeSpec, err)
	}

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, log.Fields{
		"time_spec":             s.cfg.Scheduler.TimeSpec,
		"max_concurrent_checks": s.cfg.MaxConcurrentChecks,
	}).Info("서비스 시작 완료: Watch 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 스케줄러를 안전하게 중지하고 진행 중인 확인 작업의 완료를 기다립니다.
func (s *Service) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Watch 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Watch 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// CheckAll 활성 상태의 모든 감시 상품에 대해 가격 확인을 수행합니다.
//
// 상품별 확인은 설정된 최대 동시 실행 수를 넘지 않는 범위에서 병렬로 수행됩니다.
// 추출 엔진은 공유 가변 상태가 없으므로 상품 간 잠금이 필요하지 않습니다.
func (s *Service) CheckAll(ctx context.Context) {
	items, err := s.store.List()
	if err != nil {
		applog.WithComponent(component).WithError(err).Error("가격 확인 중단: 감시 상품 목록 조회가 실패하였습니다")
		return
	}

	active := make([]*Item, 0, len(items))
	for _, item := range items {
		if item.Status == StatusActive {
			active = append(active, item)
		}
	}

	if len(active) == 0 {
		applog.WithComponent(component).Debug("확인할 활성 감시 상품이 없습니다")
		return
	}

	applog.WithComponentAndFields(component, log.Fields{
		"total_items":  len(items),
		"active_items": len(active),
	}).Info("가격 확인 시작")

	maxConcurrent := s.cfg.MaxConcurrentChecks
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	semaphore := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	for _, item := range active {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(item *Item) {
			defer wg.Done()
			defer func() { <-semaphore }()

			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			s.checkItem(checkCtx, item)
		}(item)
	}
	wg.Wait()

	applog.WithComponentAndFields(component, log.Fields{
		"checked_items": len(active),
	}).Info("가격 확인 완료")
}

// checkItem 단일 감시 상품의 가격을 확인하고 저장소에 결과를 반영합니다.
//
// 추출 실패 또는 가격 미발견 시에는 확인 시각(LastChecked)만 갱신합니다.
// 목표 가격에 도달하면 상태를 TARGET_HIT으로 전이시키고 알림을 발송합니다.
func (s *Service) checkItem(ctx context.Context, item *Item) {
	logger := applog.WithComponentAndFields(component, log.Fields{
		"item_id": item.ItemID,
		"url":     item.URL,
	})

	now := time.Now().UTC()
	item.LastChecked = now

	result, err := s.extractor.Extract(ctx, item.URL)
	if err != nil {
		logger.WithError(err).Warn("가격 확인 실패: 상품 페이지 추출 중 오류가 발생했습니다")

		s.saveItem(item, logger)
		return
	}

	if result.CurrentPrice == nil {
		logger.Debug("가격 확인 결과 없음: 상품 페이지에서 가격을 찾지 못했습니다")

		s.saveItem(item, logger)
		return
	}

	currentPrice := *result.CurrentPrice
	item.LastPrice = &currentPrice
	if result.CurrencyCode != nil {
		item.CurrencyCode = result.CurrencyCode
	}
	if item.ProductName == "" {
		item.ProductName = result.ProductName
	}

	if item.TargetHit(currentPrice) {
		item.Status = StatusTargetHit

		if err := s.notifyTargetHit(item, currentPrice); err != nil {
			logger.WithError(err).Error("알림 발송 실패: 목표 가격 도달 알림을 발송하지 못했습니다")
		} else {
			item.LastNotifiedAt = &now
		}

		logger.WithFields(log.Fields{
			"target_price":  item.TargetPrice,
			"current_price": currentPrice,
		}).Info("목표 가격 도달: 감시 상품 상태를 TARGET_HIT으로 전이합니다")
	}

	s.saveItem(item, logger)
}

// saveItem 갱신된 감시 상품을 저장하고 실패 시 로그를 남깁니다.
func (s *Service) saveItem(item *Item, logger *log.Entry) {
	if err := s.store.Save(item); err != nil {
		logger.WithError(err).Error("감시 상품 저장 실패: 확인 결과를 반영하지 못했습니다")
	}
}

// notifyTargetHit 목표 가격 도달 알림 메시지를 구성하여 발송을 요청합니다.
func (s *Service) notifyTargetHit(item *Item, currentPrice float64) error {
	currency := ""
	if item.CurrencyCode != nil {
		currency = " " + *item.CurrencyCode
	}

	productName := item.ProductName
	if productName == "" {
		productName = item.URL
	}

	title := mark.TargetHit.String() + " 목표 가격 도달"
	message := fmt.Sprintf("%s\n\n현재 가격: %.2f%s (목표: %.2f%s)\n%s",
		productName, currentPrice, currency, item.TargetPrice, currency, item.URL)

	return s.notificationSender.Notify(s.defaultNotifierID, title, message, false)
}
