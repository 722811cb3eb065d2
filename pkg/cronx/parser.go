package cronx

import "github.com/robfig/cron/v3"

// StandardParser 가격 확인 스케줄에 사용하는 표준 Cron 표현식 파서를 반환합니다.
//
// 초 단위를 포함하는 6필드 확장 형식만 지원하며, 표준 5필드 형식은 지원하지 않습니다.
// 설정 검증(Validate)과 스케줄러 구동이 반드시 같은 파서를 공유해야
// 기동 시 통과한 표현식이 스케줄 등록 시점에 거부되는 일이 없습니다.
//
// 지원 스펙:
//   - 필드 순서: [초] [분] [시] [일] [월] [요일]
//   - 특수 표현식: @daily, @hourly, @every <duration> 등 (Descriptor)
//
// 예시:
//   - "0 0 */12 * * *" : 12시간마다 가격 확인 실행
//   - "@every 30m"     : 30분 간격으로 실행
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}
