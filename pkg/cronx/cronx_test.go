package cronx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardParser(t *testing.T) {
	t.Parallel()

	parser := StandardParser()

	t.Run("초 단위를 포함한 6필드 형식을 지원한다", func(t *testing.T) {
		schedule, err := parser.Parse("30 * * * * *")
		require.NoError(t, err)

		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, base.Add(30*time.Second), schedule.Next(base))
	})

	t.Run("표준 5필드 형식은 지원하지 않는다", func(t *testing.T) {
		_, err := parser.Parse("*/5 * * * *")
		assert.Error(t, err)
	})

	t.Run("Descriptor 형식을 지원한다", func(t *testing.T) {
		for _, spec := range []string{"@daily", "@hourly", "@every 1h30m"} {
			_, err := parser.Parse(spec)
			assert.NoError(t, err, "spec: %s", spec)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate("0 */10 * * * *"))
	assert.NoError(t, Validate("@every 6h"))

	assert.Error(t, Validate(""))
	assert.Error(t, Validate("*/5 * * * *"))
	assert.Error(t, Validate("not-a-cron"))
}
