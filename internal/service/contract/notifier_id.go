package contract

// NotifierID 알림을 발송할 Notifier의 고유 식별자입니다.
type NotifierID string
