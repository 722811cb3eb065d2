package cronx

import "fmt"

// Validate 주어진 Cron 표현식이 StandardParser의 스펙에 부합하는지 검증합니다.
// 유효하지 않은 경우 원인을 포함한 에러를 반환합니다.
func Validate(spec string) error {
	if spec == "" {
		return fmt.Errorf("cron 표현식이 비어 있습니다")
	}

	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("유효하지 않은 cron 표현식입니다(%s): %w", spec, err)
	}

	return nil
}
