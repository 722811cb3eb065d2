// Package contract 서비스 간에 공유되는 인터페이스와 타입을 정의합니다.
//
// API 서비스와 Watch 서비스는 이 패키지의 인터페이스를 통해 Notification 서비스를
// 사용하므로, 서비스 구현 패키지 간의 직접적인 의존성이 발생하지 않습니다.
package contract

// NotificationSender 알림 발송 기능을 제공하는 인터페이스입니다.
type NotificationSender interface {
	// Notify 지정된 Notifier를 통해 제목을 포함한 알림 메시지를 발송합니다.
	// errorOccurred 플래그로 해당 알림이 오류 상황에 대한 것인지 명시할 수 있습니다.
	//
	// 발송 요청이 정상적으로 큐에 등록되면 nil을 반환하며, 이는 실제 전송 결과와는 무관합니다.
	// 실패 시 ErrServiceStopped, ErrNotifierNotFound 등의 에러를 반환합니다.
	Notify(notifierID NotifierID, title string, message string, errorOccurred bool) error

	// NotifyDefault 시스템에 설정된 기본 Notifier를 통해 알림 메시지를 발송합니다.
	NotifyDefault(message string) error

	// NotifyDefaultWithError 기본 Notifier를 통해 "오류" 성격의 알림 메시지를 발송합니다.
	// 시스템 내부 에러 등 관리자의 주의가 필요한 상황에 사용합니다.
	NotifyDefaultWithError(message string) error
}

// NotificationHealthChecker Notification 서비스의 상태를 확인하는 인터페이스입니다.
type NotificationHealthChecker interface {
	// Health 서비스가 정상적으로 실행 중이면 nil을, 그렇지 않으면 에러를 반환합니다.
	Health() error
}
