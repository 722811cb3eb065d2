package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/darkkaiser/pricepulse-server/pkg/cronx"
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug     bool           `json:"debug"`
	Fetch     FetchConfig    `json:"fetch"`
	Watch     WatchConfig    `json:"watch"`
	Notifiers NotifierConfig `json:"notifiers"`
	API       APIConfig      `json:"api"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate() error {
	if err := c.Fetch.validate(); err != nil {
		return err
	}

	if err := c.Watch.validate(); err != nil {
		return err
	}

	notifierIDs, err := c.Notifiers.validate()
	if err != nil {
		return err
	}

	if err := c.API.validate(notifierIDs); err != nil {
		return err
	}

	return nil
}

// VerifyRecommendations 서비스 운영의 안정성과 보안을 위해 권장되는 설정 준수 여부를 진단합니다.
// 강제적인 에러를 발생시키지는 않으나, 잠재적 위험 요소(예: Well-known Port 사용)에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	return c.API.WS.VerifyRecommendations()
}

// FetchConfig 상품 페이지 다운로드의 제한 시간과 재시도 정책을 정의하는 설정 구조체
type FetchConfig struct {
	Timeout     string `json:"timeout"`
	MaxAttempts int    `json:"max_attempts" validate:"min=1"`
	RetryDelay  string `json:"retry_delay"`
}

func (c *FetchConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("다운로드 제한 시간(timeout) 설정이 올바르지 않습니다: '%s' (예: 10s, 500ms)", c.Timeout))
	}
	if _, err := time.ParseDuration(c.RetryDelay); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("재시도 대기 시간(retry_delay) 설정이 올바르지 않습니다: '%s' (예: 1s, 500ms)", c.RetryDelay))
	}
	return checkStruct(validate, c, "Fetch")
}

// TimeoutDuration 파싱된 다운로드 제한 시간을 반환합니다. validate() 통과를 전제로 합니다.
func (c *FetchConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// RetryDelayDuration 파싱된 재시도 기준 대기 시간을 반환합니다. validate() 통과를 전제로 합니다.
func (c *FetchConfig) RetryDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryDelay)
	return d
}

// WatchConfig 가격 감시 작업의 스케줄과 저장소 경로를 정의하는 설정 구조체
type WatchConfig struct {
	Scheduler struct {
		Runnable bool   `json:"runnable"`
		TimeSpec string `json:"time_spec"`
	} `json:"scheduler"`
	DataDir             string `json:"data_dir" validate:"required"`
	MaxConcurrentChecks int    `json:"max_concurrent_checks" validate:"min=1"`
}

func (c *WatchConfig) validate() error {
	if c.Scheduler.Runnable {
		if err := cronx.Validate(c.Scheduler.TimeSpec); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "가격 감시 스케줄러(time_spec) 설정이 유효하지 않습니다")
		}
	}
	return checkStruct(validate, c, "Watch")
}

// NotifierConfig 텔레그램 등 알림 채널을 정의하는 설정 구조체
type NotifierConfig struct {
	DefaultNotifierID string           `json:"default_notifier_id"`
	Telegrams         []TelegramConfig `json:"telegrams" validate:"unique=ID"`
}

func (c *NotifierConfig) validate() ([]string, error) {
	if err := checkStruct(validate, c, "Notifiers"); err != nil {
		return nil, err
	}

	for _, telegram := range c.Telegrams {
		if err := checkStruct(validate, telegram, fmt.Sprintf("Telegram Notifier['%s']", telegram.ID)); err != nil {
			return nil, err
		}
	}

	var notifierIDs []string
	for _, telegram := range c.Telegrams {
		notifierIDs = append(notifierIDs, telegram.ID)
	}

	if !slices.Contains(notifierIDs, c.DefaultNotifierID) {
		return nil, apperrors.New(apperrors.NotFound, fmt.Sprintf("기본 NotifierID('%s')가 정의된 Notifier 목록에 존재하지 않습니다", c.DefaultNotifierID))
	}

	return notifierIDs, nil
}

// TelegramConfig 텔레그램 봇 토큰 및 채팅 ID 정보를 담는 설정 구조체
type TelegramConfig struct {
	ID       string `json:"id" validate:"required"`
	BotToken string `json:"bot_token" validate:"required,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required"`
}

// APIConfig 가격 감시 REST API 서버의 설정 구조체
type APIConfig struct {
	WS           WSConfig            `json:"ws"`
	CORS         CORSConfig          `json:"cors"`
	Applications []ApplicationConfig `json:"applications" validate:"unique=ID"`
}

func (c *APIConfig) validate(notifierIDs []string) error {
	if err := c.WS.validate(); err != nil {
		return err
	}

	if err := c.CORS.validate(); err != nil {
		return err
	}

	if err := checkStruct(validate, c, "API", "Applications"); err != nil {
		return err
	}

	for _, app := range c.Applications {
		if strings.TrimSpace(app.ID) == "" {
			return apperrors.New(apperrors.InvalidInput, "Application의 ID가 설정되지 않았습니다")
		}

		if !slices.Contains(notifierIDs, app.DefaultNotifierID) {
			return apperrors.New(apperrors.NotFound, fmt.Sprintf("Application['%s']에서 참조하는 기본 NotifierID('%s')가 정의되지 않았습니다", app.ID, app.DefaultNotifierID))
		}

		if strings.TrimSpace(app.AppKey) == "" {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("Application['%s']의 API 키(APP_KEY)가 설정되지 않았습니다", app.ID))
		}
	}

	return nil
}

// WSConfig 웹 서버의 포트 및 TLS(HTTPS) 보안 설정을 정의하는 구조체
type WSConfig struct {
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	ListenPort  int    `json:"listen_port" validate:"min=1,max=65535"`
}

func (c *WSConfig) validate() error {
	return checkStruct(validate, c, "API > WS")
}

// VerifyRecommendations 웹 서버 설정에 대한 권장 사항 준수 여부를 진단합니다.
func (c *WSConfig) VerifyRecommendations() []string {
	var warnings []string

	// 시스템 예약 포트(1024 미만) 사용 경고
	if c.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.ListenPort))
	}

	return warnings
}

// CORSConfig 웹 브라우저의 교차 출처 리소스 공유(CORS) 정책을 설정하는 구조체
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

func (c *CORSConfig) validate() error {
	if len(c.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(allow_origins) 목록이 비어있습니다")
	}

	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}

	return checkStruct(validate, c, "API > CORS")
}

// ApplicationConfig 가격 감시 API를 사용할 수 있는 클라이언트 어플리케이션의 인증 정보를 정의하는 구조체
type ApplicationConfig struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	DefaultNotifierID string `json:"default_notifier_id"`
	AppKey            string `json:"app_key"`
}
