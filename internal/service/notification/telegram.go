package notification

import (
	"context"
	"strings"
	"time"

	"github.com/darkkaiser/pricepulse-server/internal/config"
	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/darkkaiser/pricepulse-server/internal/pkg/mark"
	"github.com/darkkaiser/pricepulse-server/internal/service/contract"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// maxMessageLength 텔레그램 API가 허용하는 메시지 최대 길이(문자)입니다.
	maxMessageLength = 4096

	// queueSize 발송 요청 큐의 버퍼 크기입니다.
	queueSize = 100

	// defaultEnqueueTimeout 큐가 가득 찼을 때 빈 공간을 기다려줄 최대 시간입니다.
	// 이 시간 내에 자리가 나지 않으면 요청을 버려 시스템 전체의 지연을 방지합니다.
	defaultEnqueueTimeout = 3 * time.Second

	// drainTimeout 종료 시그널 수신 후 큐에 남은 메시지를 처리할 최대 시간입니다.
	drainTimeout = 30 * time.Second

	// sendsPerSecond 텔레그램 API Rate Limit에 걸리지 않기 위한 초당 발송 제한입니다.
	sendsPerSecond = 1
)

// messageSender 텔레그램 메시지 전송 기능의 추상화입니다. *tgbotapi.BotAPI가 이를 만족합니다.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// telegramNotifier 텔레그램 봇을 통해 알림을 발송하는 NotifierHandler 구현체입니다.
type telegramNotifier struct {
	id contract.NotifierID

	client messageSender
	chatID int64

	queue chan *message

	enqueueTimeout time.Duration

	// limiter 텔레그램 API 호출 빈도를 제한합니다.
	limiter *rate.Limiter

	done chan struct{}
}

var _ NotifierHandler = (*telegramNotifier)(nil)

// newTelegramNotifier 설정으로부터 텔레그램 Notifier를 생성합니다.
// 봇 토큰 검증을 위해 텔레그램 서버와 통신하므로 네트워크 오류 시 에러를 반환합니다.
func newTelegramNotifier(cfg *config.TelegramConfig) (NotifierHandler, error) {
	client, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "텔레그램 봇 초기화가 실패하였습니다 (notifier_id: %s)", cfg.ID)
	}

	return &telegramNotifier{
		id: contract.NotifierID(cfg.ID),

		client: client,
		chatID: cfg.ChatID,

		queue: make(chan *message, queueSize),

		enqueueTimeout: defaultEnqueueTimeout,

		limiter: rate.NewLimiter(rate.Limit(sendsPerSecond), 1),

		done: make(chan struct{}),
	}, nil
}

// ID Notifier의 고유 식별자를 반환합니다.
func (n *telegramNotifier) ID() contract.NotifierID {
	return n.id
}

// Notify 알림 발송 요청을 내부 큐에 등록합니다.
// 큐가 가득 찬 경우 enqueueTimeout까지 대기한 뒤 요청을 버립니다. (Backpressure)
func (n *telegramNotifier) Notify(msg *message) error {
	select {
	case <-n.done:
		return ErrNotifierClosed
	default:
	}

	timer := time.NewTimer(n.enqueueTimeout)
	defer timer.Stop()

	select {
	case n.queue <- msg:
		return nil
	case <-n.done:
		return ErrNotifierClosed
	case <-timer.C:
		applog.WithComponentAndFields(component, log.Fields{
			"notifier_id": n.id,
			"queue_size":  len(n.queue),
		}).Warn("알림 발송 요청 드롭: 큐가 가득 찬 상태로 대기 시간이 초과되었습니다")

		return ErrQueueFull
	}
}

// Run 발송 큐를 소비하며 텔레그램 메시지를 전송하는 메인 루프입니다.
//
// 종료 시그널을 받으면 큐에 남은 메시지를 drainTimeout 내에서 모두 발송한 뒤 반환합니다.
func (n *telegramNotifier) Run(notifierStopCtx context.Context) {
	applog.WithComponentAndFields(component, log.Fields{
		"notifier_id": n.id,
		"chat_id":     n.chatID,
	}).Info("텔레그램 Notifier 시작됨")

	for {
		select {
		case msg := <-n.queue:
			// 일단 큐에서 꺼낸 메시지는 종료 시그널과 무관하게 발송을 보장합니다.
			n.send(context.Background(), msg)

		case <-notifierStopCtx.Done():
			close(n.done)
			n.drain()

			applog.WithComponentAndFields(component, log.Fields{
				"notifier_id": n.id,
			}).Info("텔레그램 Notifier 종료됨")

			return
		}
	}
}

// drain 종료 시점에 큐에 남아있는 메시지를 제한 시간 내에서 발송합니다.
func (n *telegramNotifier) drain() {
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case msg := <-n.queue:
			n.send(drainCtx, msg)
		case <-drainCtx.Done():
			if remaining := len(n.queue); remaining > 0 {
				applog.WithComponentAndFields(component, log.Fields{
					"notifier_id":        n.id,
					"remaining_messages": remaining,
				}).Warn("종료 지연 한도 초과: 발송하지 못한 메시지가 남아있습니다")
			}
			return
		default:
			return
		}
	}
}

// send 하나의 알림을 텔레그램 메시지로 전송합니다.
// 메시지가 길이 제한을 초과하면 여러 건으로 분할하여 순서대로 전송합니다.
func (n *telegramNotifier) send(ctx context.Context, msg *message) {
	text := msg.Body
	if msg.Title != "" {
		text = msg.Title + "\n\n" + text
	}
	if msg.ErrorOccurred {
		text = mark.Alert.String() + " " + text
	}

	for _, chunk := range splitMessage(text, maxMessageLength) {
		if err := n.limiter.Wait(ctx); err != nil {
			applog.WithComponentAndFields(component, log.Fields{
				"notifier_id": n.id,
			}).WithError(err).Warn("메시지 전송 중단: 발송 대기 중 컨텍스트가 취소되었습니다")

			return
		}

		if _, err := n.client.Send(tgbotapi.NewMessage(n.chatID, chunk)); err != nil {
			applog.WithComponentAndFields(component, log.Fields{
				"notifier_id": n.id,
				"chat_id":     n.chatID,
			}).WithError(err).Error("메시지 전송 실패: 텔레그램 API 호출 중 오류가 발생했습니다")

			return
		}
	}
}

// splitMessage 텍스트를 길이 제한을 넘지 않는 조각으로 분할합니다.
//
// 가독성을 위해 가능한 한 줄바꿈 경계에서 분할하며, 한 줄이 제한을 초과하는 경우에만
// 문자가 깨지지 않도록 룬 단위로 강제 분할합니다.
func splitMessage(text string, limit int) []string {
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		lineRunes := []rune(line)

		// 한 줄 자체가 제한을 초과하면 룬 단위로 강제 분할합니다.
		for len(lineRunes) > limit {
			flush()
			chunks = append(chunks, string(lineRunes[:limit]))
			lineRunes = lineRunes[limit:]
		}

		// 현재 조각에 이 줄을 추가하면 제한을 초과하는 경우 조각을 마감합니다.
		needed := len(lineRunes)
		if currentLen > 0 {
			needed++ // 줄바꿈 문자
		}
		if currentLen+needed > limit {
			flush()
		}

		if currentLen > 0 {
			current.WriteByte('\n')
			currentLen++
		}
		current.WriteString(string(lineRunes))
		currentLen += len(lineRunes)
	}
	flush()

	return chunks
}
