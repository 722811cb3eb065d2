package notification

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/pricepulse-server/internal/config"
	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/darkkaiser/pricepulse-server/internal/service/contract"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/time/rate"
)

// fakeMessageSender 전송된 메시지 본문을 기록하는 messageSender 구현체
type fakeMessageSender struct {
	mu    sync.Mutex
	texts []string
}

func (s *fakeMessageSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.texts = append(s.texts, msg.Text)
	}

	return tgbotapi.Message{}, nil
}

func (s *fakeMessageSender) sentTexts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.texts...)
}

// fakeNotifierHandler Service 라우팅 테스트용 NotifierHandler 구현체
type fakeNotifierHandler struct {
	id contract.NotifierID

	mu       sync.Mutex
	received []*message
}

func (h *fakeNotifierHandler) ID() contract.NotifierID {
	return h.id
}

func (h *fakeNotifierHandler) Run(notifierStopCtx context.Context) {
	<-notifierStopCtx.Done()
}

func (h *fakeNotifierHandler) Notify(msg *message) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.received = append(h.received, msg)

	return nil
}

func (h *fakeNotifierHandler) receivedMessages() []*message {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]*message(nil), h.received...)
}

func newTestTelegramNotifier(client messageSender, queueSize int) *telegramNotifier {
	return &telegramNotifier{
		id: "tg-test",

		client: client,
		chatID: 100,

		queue: make(chan *message, queueSize),

		enqueueTimeout: 50 * time.Millisecond,

		limiter: rate.NewLimiter(rate.Inf, 0),

		done: make(chan struct{}),
	}
}

func newTestService(handlers ...NotifierHandler) *Service {
	s := NewService(&config.NotifierConfig{
		DefaultNotifierID: "tg-main",
	})
	s.newNotifiers = func(cfg *config.NotifierConfig) ([]NotifierHandler, error) {
		return handlers, nil
	}
	return s
}

func TestSplitMessage_짧은메시지는그대로반환(t *testing.T) {
	chunks := splitMessage("목표 가격에 도달했습니다", maxMessageLength)

	require.Len(t, chunks, 1)
	assert.Equal(t, "목표 가격에 도달했습니다", chunks[0])
}

func TestSplitMessage_줄바꿈경계에서분할(t *testing.T) {
	lines := []string{
		strings.Repeat("a", 6),
		strings.Repeat("b", 6),
		strings.Repeat("c", 6),
	}

	chunks := splitMessage(strings.Join(lines, "\n"), 13)

	require.Len(t, chunks, 2)
	assert.Equal(t, lines[0]+"\n"+lines[1], chunks[0])
	assert.Equal(t, lines[2], chunks[1])
}

func TestSplitMessage_제한초과줄은룬단위로분할(t *testing.T) {
	// 멀티바이트 문자가 분할 경계에서 깨지지 않아야 한다.
	text := strings.Repeat("가", 25)

	chunks := splitMessage(text, 10)

	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("가", 10), chunks[0])
	assert.Equal(t, strings.Repeat("가", 10), chunks[1])
	assert.Equal(t, strings.Repeat("가", 5), chunks[2])
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestTelegramNotifier_메시지발송(t *testing.T) {
	sender := &fakeMessageSender{}
	notifier := newTestTelegramNotifier(sender, 10)

	ctx, cancel := context.WithCancel(context.Background())

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		notifier.Run(ctx)
	}()

	require.NoError(t, notifier.Notify(&message{
		Title: "🔥 목표 가격 도달",
		Body:  "상품 가격이 목표가 이하로 내려갔습니다",
	}))

	assert.Eventually(t, func() bool {
		return len(sender.sentTexts()) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-runDone

	texts := sender.sentTexts()
	require.Len(t, texts, 1)
	assert.Equal(t, "🔥 목표 가격 도달\n\n상품 가격이 목표가 이하로 내려갔습니다", texts[0])
}

func TestTelegramNotifier_오류메시지강조(t *testing.T) {
	sender := &fakeMessageSender{}
	notifier := newTestTelegramNotifier(sender, 10)

	require.NoError(t, notifier.Notify(&message{
		Body:          "저장소 접근이 실패하였습니다",
		ErrorOccurred: true,
	}))

	// 이미 취소된 컨텍스트로 실행하면 잔여 메시지 처리(drain) 경로를 태운다.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	notifier.Run(ctx)

	texts := sender.sentTexts()
	require.Len(t, texts, 1)
	assert.Equal(t, "🚨 저장소 접근이 실패하였습니다", texts[0])
}

func TestTelegramNotifier_종료시잔여메시지모두발송(t *testing.T) {
	sender := &fakeMessageSender{}
	notifier := newTestTelegramNotifier(sender, 10)

	for i := 0; i < 3; i++ {
		require.NoError(t, notifier.Notify(&message{Body: "잔여 메시지"}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	notifier.Run(ctx)

	assert.Len(t, sender.sentTexts(), 3)
}

func TestTelegramNotifier_큐가가득차면요청거부(t *testing.T) {
	notifier := newTestTelegramNotifier(&fakeMessageSender{}, 1)

	require.NoError(t, notifier.Notify(&message{Body: "첫번째"}))

	err := notifier.Notify(&message{Body: "두번째"})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestTelegramNotifier_종료후요청거부(t *testing.T) {
	notifier := newTestTelegramNotifier(&fakeMessageSender{}, 10)
	close(notifier.done)

	err := notifier.Notify(&message{Body: "너무 늦은 요청"})
	assert.ErrorIs(t, err, ErrNotifierClosed)
}

func TestService_알림라우팅(t *testing.T) {
	defer goleak.VerifyNone(t)

	mainHandler := &fakeNotifierHandler{id: "tg-main"}
	subHandler := &fakeNotifierHandler{id: "tg-sub"}
	s := newTestService(mainHandler, subHandler)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	require.NoError(t, s.Notify("tg-sub", "제목", "지정 채널 메시지", false))
	require.NoError(t, s.NotifyDefault("기본 채널 메시지"))
	require.NoError(t, s.NotifyDefaultWithError("오류 메시지"))
	require.NoError(t, s.Health())

	cancel()
	wg.Wait()

	subMessages := subHandler.receivedMessages()
	require.Len(t, subMessages, 1)
	assert.Equal(t, "제목", subMessages[0].Title)
	assert.Equal(t, "지정 채널 메시지", subMessages[0].Body)
	assert.False(t, subMessages[0].ErrorOccurred)

	mainMessages := mainHandler.receivedMessages()
	require.Len(t, mainMessages, 2)
	assert.Equal(t, "기본 채널 메시지", mainMessages[0].Body)
	assert.True(t, mainMessages[1].ErrorOccurred)
}

func TestService_존재하지않는Notifier(t *testing.T) {
	s := newTestService(&fakeNotifierHandler{id: "tg-main"})

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	err := s.Notify("no-such-notifier", "제목", "메시지", false)
	assert.ErrorIs(t, err, contract.ErrNotifierNotFound)

	cancel()
	wg.Wait()
}

func TestService_중지상태에서는요청거부(t *testing.T) {
	s := newTestService(&fakeNotifierHandler{id: "tg-main"})

	assert.ErrorIs(t, s.NotifyDefault("시작 전 요청"), contract.ErrServiceStopped)
	assert.ErrorIs(t, s.Health(), contract.ErrServiceStopped)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	cancel()
	wg.Wait()

	assert.ErrorIs(t, s.NotifyDefault("종료 후 요청"), contract.ErrServiceStopped)
}

func TestService_기본Notifier가없으면시작실패(t *testing.T) {
	s := newTestService(&fakeNotifierHandler{id: "tg-other"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	wg.Add(1)
	err := s.Start(ctx, &wg)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))

	// 시작에 실패한 경우에도 WaitGroup은 정리되어야 한다.
	wg.Wait()
}
