package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	t.Run("Name이 없으면 에러를 반환한다", func(t *testing.T) {
		opts := Options{}
		assert.Error(t, opts.Validate())
	})

	t.Run("음수 설정값은 거부한다", func(t *testing.T) {
		for _, opts := range []Options{
			{Name: "app", MaxAge: -1},
			{Name: "app", MaxSizeMB: -1},
			{Name: "app", MaxBackups: -1},
		} {
			assert.Error(t, opts.Validate())
		}
	})

	t.Run("정상 설정값은 통과한다", func(t *testing.T) {
		opts := Options{Name: "app", Dir: t.TempDir(), MaxAge: 7}
		assert.NoError(t, opts.Validate())
	})
}

func newTestEntry(level Level, msg string) *Entry {
	logger := logrus.New()
	entry := logrus.NewEntry(logger)
	entry.Level = level
	entry.Message = msg
	return entry
}

func TestHookRouting(t *testing.T) {
	newHook := func() (*hook, *bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
		var main, critical, verbose bytes.Buffer
		h := &hook{
			mainWriter:     &main,
			criticalWriter: &critical,
			verboseWriter:  &verbose,
			formatter:      &logrus.TextFormatter{DisableTimestamp: true},
		}
		return h, &main, &critical, &verbose
	}

	t.Run("Info 로그는 Main 채널에만 기록된다", func(t *testing.T) {
		h, main, critical, verbose := newHook()

		require.NoError(t, h.Fire(newTestEntry(InfoLevel, "정상 동작")))

		assert.Contains(t, main.String(), "정상 동작")
		assert.Empty(t, critical.String())
		assert.Empty(t, verbose.String())
	})

	t.Run("Error 로그는 Critical과 Main 채널에 모두 기록된다", func(t *testing.T) {
		h, main, critical, verbose := newHook()

		require.NoError(t, h.Fire(newTestEntry(ErrorLevel, "오류 발생")))

		assert.Contains(t, main.String(), "오류 발생")
		assert.Contains(t, critical.String(), "오류 발생")
		assert.Empty(t, verbose.String())
	})

	t.Run("Debug 로그는 Verbose 채널에만 기록된다", func(t *testing.T) {
		h, main, critical, verbose := newHook()

		require.NoError(t, h.Fire(newTestEntry(DebugLevel, "상세 정보")))

		assert.Empty(t, main.String())
		assert.Empty(t, critical.String())
		assert.Contains(t, verbose.String(), "상세 정보")
	})

	t.Run("닫힌 Hook은 로그를 기록하지 않는다", func(t *testing.T) {
		h, main, _, _ := newHook()

		require.NoError(t, h.Close())
		require.NoError(t, h.Fire(newTestEntry(InfoLevel, "무시되어야 함")))

		assert.Empty(t, main.String())
	})
}

type failingCloser struct {
	closeCount int
	err        error
}

func (f *failingCloser) Close() error {
	f.closeCount++
	return f.err
}

func TestCloser(t *testing.T) {
	t.Run("모든 Closer를 닫고 발생한 에러를 모아 반환한다", func(t *testing.T) {
		failing := &failingCloser{err: errors.New("닫기 실패")}
		ok := &failingCloser{}

		c := &closer{}
		c.closers = append(c.closers, failing, ok)

		err := c.Close()
		assert.Error(t, err)
		assert.Equal(t, 1, failing.closeCount)
		assert.Equal(t, 1, ok.closeCount)
	})

	t.Run("두 번째 Close 호출은 아무 작업 없이 nil을 반환한다", func(t *testing.T) {
		fc := &failingCloser{err: errors.New("닫기 실패")}
		c := &closer{}
		c.closers = append(c.closers, fc)

		assert.Error(t, c.Close())
		assert.NoError(t, c.Close())
		assert.Equal(t, 1, fc.closeCount)
	})
}

func TestSetupInternal_로그레벨적용(t *testing.T) {
	original := logrus.GetLevel()
	defer logrus.SetLevel(original)

	t.Run("Level 미지정 시 InfoLevel이 기본값이다", func(t *testing.T) {
		c, err := setupInternal(Options{Name: "app", Dir: t.TempDir()})
		require.NoError(t, err)
		defer c.Close()

		assert.Equal(t, InfoLevel, logrus.GetLevel())
	})

	t.Run("지정된 Level이 적용된다", func(t *testing.T) {
		c, err := setupInternal(Options{Name: "app", Dir: t.TempDir(), Level: DebugLevel})
		require.NoError(t, err)
		defer c.Close()

		assert.Equal(t, DebugLevel, logrus.GetLevel())
	})
}

func TestProfiles_로그레벨(t *testing.T) {
	assert.Equal(t, InfoLevel, NewProductionConfig("app").Level)
	assert.Equal(t, TraceLevel, NewDevelopmentConfig("app").Level)
}

func TestSetDebugMode(t *testing.T) {
	original := logrus.GetLevel()
	defer logrus.SetLevel(original)

	SetDebugMode(true)
	assert.Equal(t, TraceLevel, logrus.GetLevel())

	SetDebugMode(false)
	assert.Equal(t, InfoLevel, logrus.GetLevel())
}

func TestWithComponent(t *testing.T) {
	entry := WithComponent("watch")
	assert.Equal(t, "watch", entry.Data["component"])

	entry = WithComponentAndFields("api", Fields{"request_id": "abc"})
	assert.Equal(t, "api", entry.Data["component"])
	assert.Equal(t, "abc", entry.Data["request_id"])
}
