// Package config 설정 파일과 환경 변수로부터 애플리케이션 설정을 로드하고 검증합니다.
package config

import (
	"fmt"
	"os"
	"strings"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/darkkaiser/pricepulse-server/pkg/strutil"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "pricepulse-server"

	// DefaultFilename 애플리케이션 초기화 시 참조하는 기본 설정 파일명입니다.
	// 실행 인자를 통해 명시적인 경로가 제공되지 않을 경우, 시스템은 이 파일을 탐색하여 구성을 로드합니다.
	DefaultFilename = AppName + ".json"

	// ------------------------------------------------------------------------------------------------
	// 페이지 다운로드 정책 기본값
	// ------------------------------------------------------------------------------------------------

	// DefaultFetchTimeout 단일 HTTP 요청의 제한 시간 기본값
	DefaultFetchTimeout = "10s"

	// DefaultFetchMaxAttempts 다운로드 실패 시 최대 시도 횟수 기본값 (최초 시도 포함)
	DefaultFetchMaxAttempts = 3

	// DefaultFetchRetryDelay 재시도 선형 백오프의 기준 대기 시간 기본값
	DefaultFetchRetryDelay = "1s"

	// ------------------------------------------------------------------------------------------------
	// 가격 감시 작업 기본값
	// ------------------------------------------------------------------------------------------------

	// DefaultWatchTimeSpec 가격 확인 스케줄 기본값 (6시간 간격)
	DefaultWatchTimeSpec = "@every 6h"

	// DefaultWatchDataDir 감시 상품 정보가 저장되는 디렉토리 기본값
	DefaultWatchDataDir = "./data"

	// DefaultWatchMaxConcurrentChecks 동시에 수행할 가격 확인 작업의 최대 개수 기본값
	DefaultWatchMaxConcurrentChecks = 4
)

// listValueKeys 환경 변수로 지정될 때 쉼표로 구분된 목록으로 해석하는 설정 키입니다.
var listValueKeys = map[string]struct{}{
	"api.cors.allow_origins": {},
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	err := k.Load(confmap.Provider(map[string]interface{}{
		"fetch.timeout":               DefaultFetchTimeout,
		"fetch.max_attempts":          DefaultFetchMaxAttempts,
		"fetch.retry_delay":           DefaultFetchRetryDelay,
		"watch.scheduler.time_spec":   DefaultWatchTimeSpec,
		"watch.data_dir":              DefaultWatchDataDir,
		"watch.max_concurrent_checks": DefaultWatchMaxConcurrentChecks,
	}, "."), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위, JSON 설정 덮어쓰기)
	// 접두사: PRICEPULSE_
	// 구분자: 이중 언더스코어(__)를 점(.)으로 변환 (계층 구조 표현)
	// 예: PRICEPULSE_FETCH__MAX_ATTEMPTS -> fetch.max_attempts
	// 목록형 설정은 쉼표로 구분하여 지정합니다.
	// 예: PRICEPULSE_API__CORS__ALLOW_ORIGINS="https://a.com, https://b.com"
	if err := k.Load(env.ProviderWithValue("PRICEPULSE_", ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(key, "PRICEPULSE_")
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "__", ".")

		if _, ok := listValueKeys[key]; ok {
			return key, strutil.SplitAndTrim(value, ",")
		}
		return key, value
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (Strict Validation 적용)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true, // 파일에 존재하지만 구조체에 없는 필드가 있을 경우 에러를 발생시킴
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사 수행 (정합성 체크)
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
