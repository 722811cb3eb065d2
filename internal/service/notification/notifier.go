// Package notification 목표 가격 도달 등 시스템 알림의 발송을 담당하는 서비스입니다.
//
// 발송 요청은 Notifier별 내부 큐에 비동기로 적재되며, 각 Notifier의 Run 고루틴이
// 자신의 속도에 맞춰 메시지를 소비합니다. 요청자는 실제 전송 완료를 기다리지 않습니다.
package notification

import (
	"context"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/darkkaiser/pricepulse-server/internal/service/contract"
)

// message 알림 발송 요청 한 건의 내용입니다.
type message struct {
	// Title 알림 메시지의 제목입니다. 빈 문자열이면 본문만 발송됩니다.
	Title string

	// Body 전송할 메시지 본문입니다.
	Body string

	// ErrorOccurred 오류 상황에 대한 알림인지 여부입니다. 수신 측에서 시각적으로 강조됩니다.
	ErrorOccurred bool
}

// NotifierHandler 개별 알림 채널(예: Telegram) 구현을 위한 인터페이스입니다.
type NotifierHandler interface {
	// ID Notifier의 고유 식별자를 반환합니다.
	ID() contract.NotifierID

	// Run Notifier의 메인 루프를 실행합니다. 내부 큐를 소비하여 실제 발송을 수행하며,
	// 컨텍스트가 취소되면 큐에 남은 메시지를 처리한 뒤 반환합니다.
	Run(notifierStopCtx context.Context)

	// Notify 알림 발송 요청을 내부 큐에 등록합니다.
	// 큐 등록 성공 여부만 반환하며 실제 전송 결과와는 무관합니다.
	Notify(msg *message) error
}

var (
	// ErrQueueFull 발송 요청 큐가 가득 차 요청이 거부되었을 때 반환하는 에러입니다.
	ErrQueueFull = apperrors.New(apperrors.Unavailable, "알림 발송 큐가 가득 차 요청을 처리할 수 없습니다")

	// ErrNotifierClosed 종료된 Notifier에 발송을 요청했을 때 반환하는 에러입니다.
	ErrNotifierClosed = apperrors.New(apperrors.Unavailable, "Notifier가 종료되어 요청을 처리할 수 없습니다")
)
