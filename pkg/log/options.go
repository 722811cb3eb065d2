package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 옵션입니다.
type Options struct {
	Name string // 로그 파일명 생성에 사용될 애플리케이션 식별자
	Dir  string // 로그 파일이 저장될 디렉토리 경로 (빈 문자열: "logs")

	// 초기 로그 레벨 (0: InfoLevel)
	// 초기화 이후의 레벨 변경은 SetDebugMode()가 담당합니다.
	Level Level

	MaxAge     int // 오래된 로그 삭제 기준일 (일 단위, 0: 삭제 안 함)
	MaxSizeMB  int // 로그 파일 하나당 최대 크기 (MB, 0: 기본값 사용)
	MaxBackups int // 로테이션 된 로그 파일의 최대 보관 개수 (0: 기본값 사용)

	EnableCriticalLog bool // ERROR 이상(ERROR, FATAL, PANIC)의 로그를 별도 파일로 분리 저장할지 여부
	EnableVerboseLog  bool // DEBUG 이하(DEBUG, TRACE)의 로그를 별도 파일로 분리 저장할지 여부
	EnableConsoleLog  bool // 표준 출력(Stdout)에도 로그를 출력할지 여부 (개발 환경 권장)

	// 로그를 호출한 소스 코드의 위치(함수명, 라인번호)를 함께 기록할지 여부
	ReportCaller bool

	// 호출자 경로에서 축약할 prefix
	// 예: "github.com/darkkaiser" 설정 시 ".../pricepulse-server/..." 형태로 출력됩니다.
	CallerPathPrefix string
}

// Validate Options 필드 값의 유효성을 검증합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}

	if opts.MaxAge < 0 {
		return fmt.Errorf("MaxAge는 0 이상이어야 합니다: %d", opts.MaxAge)
	}
	if opts.MaxSizeMB < 0 {
		return fmt.Errorf("MaxSizeMB는 0 이상이어야 합니다: %d", opts.MaxSizeMB)
	}
	if opts.MaxBackups < 0 {
		return fmt.Errorf("MaxBackups는 0 이상이어야 합니다: %d", opts.MaxBackups)
	}

	return nil
}
