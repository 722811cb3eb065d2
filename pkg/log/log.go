// Package log 애플리케이션 전역 로깅 시스템을 제공합니다.
//
// Logrus를 기반으로 레벨별 파일 분리(Main/Critical/Verbose), 로그 로테이션,
// 콘솔 출력을 구성하며, component 필드 중심의 구조화 로깅 헬퍼를 제공합니다.
package log

import (
	log "github.com/sirupsen/logrus"
)

// Logrus 전역 함수의 재노출입니다.
// 사용하는 측에서는 logrus를 직접 import하지 않고 이 패키지만 사용합니다.
var (
	StandardLogger = log.StandardLogger
	SetOutput      = log.SetOutput
	GetLevel       = log.GetLevel

	WithFields = log.WithFields
	WithError  = log.WithError

	Trace  = log.Trace
	Tracef = log.Tracef
	Debug  = log.Debug
	Debugf = log.Debugf
	Info   = log.Info
	Infof  = log.Infof
	Warn   = log.Warn
	Warnf  = log.Warnf
	Error  = log.Error
	Errorf = log.Errorf
	Fatal  = log.Fatal
	Fatalf = log.Fatalf
	Panic  = log.Panic
	Panicf = log.Panicf
)

// SetDebugMode Debug 모드에 따라 로그 레벨을 설정합니다.
//   - Debug 모드: Trace 레벨 (모든 로그 출력)
//   - 운영 모드: Info 레벨 (Info, Warn, Error, Fatal만 출력)
func SetDebugMode(debug bool) {
	if debug {
		log.SetLevel(log.TraceLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
// 모든 로그에 component 필드를 일관되게 추가하기 위해 사용합니다.
func WithComponent(component string) *log.Entry {
	return log.WithFields(log.Fields{
		"component": component,
	})
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields log.Fields) *log.Entry {
	newFields := make(log.Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields["component"] = component
	return log.WithFields(newFields)
}
