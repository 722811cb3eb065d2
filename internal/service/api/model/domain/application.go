// Package domain API 서비스의 런타임 도메인 모델을 정의합니다.
package domain

// Application 가격 감시 API를 사용하는 클라이언트 애플리케이션입니다.
//
// config.ApplicationConfig에서 로드된 런타임 표현으로, 인증을 통과한 후
// 핸들러에서 요청자 식별에 사용됩니다.
type Application struct {
	ID                string // 애플리케이션 식별자
	Title             string // 애플리케이션 이름
	Description       string // 애플리케이션 설명
	DefaultNotifierID string // 애플리케이션의 기본 알림 전송자 ID
	AppKey            string // API 인증 키
}
