package notification

import (
	"context"
	"sync"

	"github.com/darkkaiser/pricepulse-server/internal/config"
	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/darkkaiser/pricepulse-server/internal/service"
	"github.com/darkkaiser/pricepulse-server/internal/service/contract"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	log "github.com/sirupsen/logrus"
)

// component Notification 서비스의 로깅용 컴포넌트 이름
const component = "notification"

// notifierFactory 설정으로부터 NotifierHandler 목록을 생성하는 함수 타입입니다.
// 테스트에서 실제 텔레그램 봇 연결 없이 가짜 Notifier를 주입하기 위한 접합부입니다.
type notifierFactory func(cfg *config.NotifierConfig) ([]NotifierHandler, error)

// defaultNotifierFactory 설정에 정의된 모든 텔레그램 Notifier를 생성합니다.
func defaultNotifierFactory(cfg *config.NotifierConfig) ([]NotifierHandler, error) {
	var handlers []NotifierHandler
	for i := range cfg.Telegrams {
		handler, err := newTelegramNotifier(&cfg.Telegrams[i])
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, handler)
	}
	return handlers, nil
}

// Service 알림 발송 서비스의 구현체입니다.
//
// 설정에 정의된 Notifier들을 생성하여 각각의 Run 고루틴으로 실행하고,
// NotificationSender 인터페이스를 통해 들어오는 발송 요청을 해당 Notifier로 라우팅합니다.
type Service struct {
	cfg *config.NotifierConfig

	newNotifiers notifierFactory

	notifiers       map[contract.NotifierID]NotifierHandler
	defaultNotifier NotifierHandler

	notifiersStopWG sync.WaitGroup

	running   bool
	runningMu sync.Mutex
}

var (
	_ service.Service                    = (*Service)(nil)
	_ contract.NotificationSender        = (*Service)(nil)
	_ contract.NotificationHealthChecker = (*Service)(nil)
)

// NewService Notification 서비스를 생성합니다.
func NewService(cfg *config.NotifierConfig) *Service {
	if cfg == nil {
		panic("Notifier 설정 객체가 전달되지 않았습니다")
	}

	return &Service{
		cfg: cfg,

		newNotifiers: defaultNotifierFactory,

		notifiers: make(map[contract.NotifierID]NotifierHandler),
	}
}

// Start 설정된 Notifier들을 생성하고 각각의 발송 고루틴을 실행합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Debug("Notification 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()

		applog.WithComponent(component).Warn("Notification 서비스가 이미 시작되어 있습니다")

		return nil
	}

	handlers, err := s.newNotifiers(s.cfg)
	if err != nil {
		serviceStopWG.Done()
		return err
	}

	for _, handler := range handlers {
		s.notifiers[handler.ID()] = handler
	}

	defaultNotifier, exists := s.notifiers[contract.NotifierID(s.cfg.DefaultNotifierID)]
	if !exists {
		serviceStopWG.Done()
		return apperrors.Newf(apperrors.NotFound, "기본 Notifier를 찾을 수 없습니다 (notifier_id: %s)", s.cfg.DefaultNotifierID)
	}
	s.defaultNotifier = defaultNotifier

	for _, handler := range s.notifiers {
		s.notifiersStopWG.Add(1)
		go func(handler NotifierHandler) {
			defer s.notifiersStopWG.Done()
			handler.Run(serviceStopCtx)
		}(handler)
	}

	s.running = true

	go s.waitForShutdown(serviceStopCtx, serviceStopWG)

	applog.WithComponentAndFields(component, log.Fields{
		"notifier_count":      len(s.notifiers),
		"default_notifier_id": s.cfg.DefaultNotifierID,
	}).Info("Notification 서비스 시작됨")

	return nil
}

// waitForShutdown 서비스 종료 시그널을 대기하다가 모든 Notifier의 종료를 보장합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	<-serviceStopCtx.Done()

	applog.WithComponent(component).Debug("Notification 서비스 중지중...")

	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	// 각 Notifier가 큐에 남은 메시지를 모두 발송할 때까지 대기합니다.
	s.notifiersStopWG.Wait()

	applog.WithComponent(component).Info("Notification 서비스 중지됨")
}

// Notify 지정된 Notifier를 통해 알림 메시지 발송을 요청합니다.
func (s *Service) Notify(notifierID contract.NotifierID, title string, body string, errorOccurred bool) error {
	handler, err := s.lookupNotifier(notifierID)
	if err != nil {
		return err
	}

	return handler.Notify(&message{
		Title:         title,
		Body:          body,
		ErrorOccurred: errorOccurred,
	})
}

// NotifyDefault 기본 Notifier를 통해 알림 메시지 발송을 요청합니다.
func (s *Service) NotifyDefault(body string) error {
	return s.notifyDefault(body, false)
}

// NotifyDefaultWithError 기본 Notifier를 통해 오류 알림 메시지 발송을 요청합니다.
func (s *Service) NotifyDefaultWithError(body string) error {
	return s.notifyDefault(body, true)
}

func (s *Service) notifyDefault(body string, errorOccurred bool) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return contract.ErrServiceStopped
	}

	return s.defaultNotifier.Notify(&message{
		Body:          body,
		ErrorOccurred: errorOccurred,
	})
}

// Health 서비스가 발송 요청을 처리할 수 있는 상태인지 확인합니다.
func (s *Service) Health() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return contract.ErrServiceStopped
	}

	return nil
}

func (s *Service) lookupNotifier(notifierID contract.NotifierID) (NotifierHandler, error) {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return nil, contract.ErrServiceStopped
	}

	handler, exists := s.notifiers[notifierID]
	if !exists {
		applog.WithComponentAndFields(component, log.Fields{
			"notifier_id": notifierID,
		}).Warn("알림 발송 요청 거부: 지정된 Notifier가 존재하지 않습니다")

		return nil, contract.ErrNotifierNotFound
	}

	return handler, nil
}
