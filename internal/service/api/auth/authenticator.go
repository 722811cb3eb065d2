// Package auth 가격 감시 API의 클라이언트 애플리케이션 인증을 담당합니다.
package auth

import (
	"sync"

	"github.com/darkkaiser/pricepulse-server/internal/config"
	"github.com/darkkaiser/pricepulse-server/internal/service/api/model/domain"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	"github.com/darkkaiser/pricepulse-server/pkg/strutil"
	log "github.com/sirupsen/logrus"
)

// component 인증 처리의 로깅용 컴포넌트 이름
const component = "api.auth"

// QueryParamAppKey 애플리케이션 인증에 사용되는 쿼리 파라미터 키입니다.
const QueryParamAppKey = "app_key"

// Authenticator 애플리케이션 인증을 담당하는 인증자입니다.
//
// 설정 파일에 등록된 애플리케이션 정보를 메모리에 로드하고,
// Application ID와 App Key 조합으로 인증을 수행합니다.
//
// sync.RWMutex로 보호되므로 여러 고루틴에서 동시에 Authenticate를 호출해도 안전합니다.
// 현재는 초기화 후 읽기 전용이지만, 향후 동적 등록/해지 기능 확장을 고려한 구조입니다.
type Authenticator struct {
	mu           sync.RWMutex
	applications map[string]*domain.Application
}

// NewAuthenticator 설정에서 애플리케이션 목록을 로드하여 Authenticator를 생성합니다.
func NewAuthenticator(cfg *config.APIConfig) *Authenticator {
	applications := make(map[string]*domain.Application)
	for _, application := range cfg.Applications {
		applications[application.ID] = &domain.Application{
			ID:                application.ID,
			Title:             application.Title,
			Description:       application.Description,
			DefaultNotifierID: application.DefaultNotifierID,
			AppKey:            application.AppKey,
		}
	}

	return &Authenticator{
		applications: applications,
	}
}

// Authenticate 애플리케이션을 찾아 App Key를 검증합니다.
// 성공 시 Application 객체를, 실패 시 401 에러를 반환합니다.
func (a *Authenticator) Authenticate(applicationID, appKey string) (*domain.Application, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	app, ok := a.applications[applicationID]
	if !ok {
		return nil, NewErrInvalidApplicationID(applicationID)
	}

	if app.AppKey != appKey {
		applog.WithComponentAndFields(component, log.Fields{
			"application_id":   applicationID,
			"received_app_key": strutil.MaskSensitiveData(appKey),
		}).Warn("APP_KEY 불일치")

		return nil, NewErrInvalidAppKey(applicationID)
	}

	return app, nil
}
