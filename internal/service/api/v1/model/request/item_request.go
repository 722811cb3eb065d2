// Package request v1 API의 요청 본문 모델을 정의합니다.
package request

// CreateItemRequest 감시 상품 등록 요청
type CreateItemRequest struct {
	// 인증에 사용할 애플리케이션 식별자
	ApplicationID string `json:"application_id" validate:"required" korean:"애플리케이션 ID"`

	// 감시할 상품 페이지 URL
	URL string `json:"url" validate:"required" korean:"상품 URL"`

	// 목표 가격 (이 가격 이하로 내려가면 알림 발송)
	TargetPrice float64 `json:"target_price" validate:"required,gt=0" korean:"목표 가격"`

	// 상품명 (생략 시 페이지에서 자동 추출)
	ProductName string `json:"product_name,omitempty" validate:"omitempty,max=256" korean:"상품명"`

	// 가격 확인 주기(분)
	FrequencyMinutes int `json:"frequency_minutes,omitempty" validate:"omitempty,min=1" korean:"확인 주기"`

	// 알림 채널
	NotificationChannel string `json:"notification_channel,omitempty" korean:"알림 채널"`

	// 알림 수신 이메일
	NotificationEmail string `json:"notification_email,omitempty" validate:"omitempty,email" korean:"알림 이메일"`

	// 등록 주체 (예: web, bot)
	AddedBy string `json:"added_by,omitempty" korean:"등록 주체"`
}

// UpdateItemRequest 감시 상품 수정 요청
//
// 포인터 필드는 요청 본문에 포함된 항목만 갱신하기 위한 것입니다. (부분 수정)
type UpdateItemRequest struct {
	// 인증에 사용할 애플리케이션 식별자
	ApplicationID string `json:"application_id" validate:"required" korean:"애플리케이션 ID"`

	// 목표 가격
	TargetPrice *float64 `json:"target_price,omitempty" validate:"omitempty,gt=0" korean:"목표 가격"`

	// 상품명
	ProductName *string `json:"product_name,omitempty" validate:"omitempty,max=256" korean:"상품명"`

	// 감시 상태 (ACTIVE, PAUSED, TARGET_HIT)
	Status *string `json:"status,omitempty" korean:"감시 상태"`

	// 가격 확인 주기(분)
	FrequencyMinutes *int `json:"frequency_minutes,omitempty" validate:"omitempty,min=1" korean:"확인 주기"`

	// 알림 채널
	NotificationChannel *string `json:"notification_channel,omitempty" korean:"알림 채널"`

	// 알림 수신 이메일
	NotificationEmail *string `json:"notification_email,omitempty" validate:"omitempty,email" korean:"알림 이메일"`
}

// ExtractRequest 상품 정보 즉시 추출 요청
type ExtractRequest struct {
	// 인증에 사용할 애플리케이션 식별자
	ApplicationID string `json:"application_id" validate:"required" korean:"애플리케이션 ID"`

	// 상품 정보를 추출할 페이지 URL
	URL string `json:"url" validate:"required" korean:"상품 URL"`
}
