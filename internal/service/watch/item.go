package watch

import (
	"time"
)

// Status 감시 상품의 생명주기 상태입니다.
type Status string

const (
	// StatusActive 주기적으로 가격을 확인하는 정상 감시 상태입니다.
	StatusActive Status = "ACTIVE"

	// StatusTargetHit 현재 가격이 목표 가격 이하로 내려가 알림이 발송된 상태입니다.
	StatusTargetHit Status = "TARGET_HIT"

	// StatusPaused 사용자가 감시를 일시 중지한 상태입니다.
	StatusPaused Status = "PAUSED"
)

// IsValid 알려진 상태 값인지 검사합니다.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusTargetHit, StatusPaused:
		return true
	default:
		return false
	}
}

const (
	// DefaultFrequencyMinutes 가격 확인 주기 기본값입니다. (12시간)
	DefaultFrequencyMinutes = 720

	// DefaultNotificationChannel 알림 채널 기본값입니다.
	DefaultNotificationChannel = "email"
)

// Item 사용자가 등록한 감시 상품입니다.
//
// 가격 확인 결과에 따라 LastPrice, LastChecked가 갱신되며, 현재 가격이
// 목표 가격 이하로 내려가면 상태가 TARGET_HIT으로 전이되고 알림이 발송됩니다.
type Item struct {
	UserID string `json:"user_id"`
	ItemID ItemID `json:"item_id"`

	URL         string `json:"url"`
	ProductName string `json:"product_name,omitempty"`

	TargetPrice  float64  `json:"target_price"`
	LastPrice    *float64 `json:"last_price,omitempty"`
	CurrencyCode *string  `json:"currency_code,omitempty"`

	Status Status `json:"status"`

	// FrequencyMinutes 가격 확인 주기(분)입니다.
	FrequencyMinutes int `json:"frequency_minutes"`

	NotificationChannel string `json:"notification_channel"`
	NotificationEmail   string `json:"notification_email,omitempty"`

	AddedBy string `json:"added_by,omitempty"`

	CreatedAt      time.Time  `json:"created_at"`
	LastChecked    time.Time  `json:"last_checked"`
	LastNotifiedAt *time.Time `json:"last_notified_at,omitempty"`
}

// NewItem 기본값이 채워진 새로운 감시 상품을 생성합니다.
func NewItem(userID, url string, targetPrice float64) *Item {
	now := time.Now().UTC()

	return &Item{
		UserID: userID,
		ItemID: defaultIDGenerator.New(),

		URL: url,

		TargetPrice: targetPrice,

		Status: StatusActive,

		FrequencyMinutes:    DefaultFrequencyMinutes,
		NotificationChannel: DefaultNotificationChannel,

		CreatedAt:   now,
		LastChecked: now,
	}
}

// TargetHit 현재 가격이 목표 가격에 도달했는지 검사합니다.
func (i *Item) TargetHit(currentPrice float64) bool {
	return currentPrice <= i.TargetPrice
}
