package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_기본값(t *testing.T) {
	bi := Get()

	assert.NotEmpty(t, bi.Version)
	assert.NotEmpty(t, bi.Commit)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
	assert.Equal(t, runtime.GOOS, bi.OS)
	assert.Equal(t, runtime.GOARCH, bi.Arch)
}

func TestNewInfo_VCS메타데이터보강(t *testing.T) {
	origReadBuildInfo := readBuildInfo
	defer func() { readBuildInfo = origReadBuildInfo }()

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v1.2.3"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "f25b8bfabcdef0123456789"},
				{Key: "vcs.time", Value: "2026-08-27T00:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
			},
		}, true
	}

	bi := newInfo()

	assert.Equal(t, "v1.2.3", bi.Version)
	assert.Equal(t, "f25b8bfabcdef0123456789", bi.Commit)
	assert.Equal(t, "2026-08-27T00:00:00Z", bi.BuildDate)
	assert.True(t, bi.DirtyBuild)
}

func TestNewInfo_메타데이터없음(t *testing.T) {
	origReadBuildInfo := readBuildInfo
	defer func() { readBuildInfo = origReadBuildInfo }()

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return nil, false
	}

	bi := newInfo()

	assert.Equal(t, unknown, bi.Version)
	assert.Equal(t, unknown, bi.Commit)
	assert.Equal(t, unknown, bi.BuildDate)
}

func TestInfo_String(t *testing.T) {
	bi := Info{
		Version:    "v1.0.1",
		Commit:     "f25b8bfabcdef",
		BuildDate:  "2026-08-27T00:00:00Z",
		GoVersion:  "go1.24.0",
		OS:         "linux",
		Arch:       "amd64",
		DirtyBuild: true,
	}

	s := bi.String()

	require.Contains(t, s, "v1.0.1+dirty")
	assert.Contains(t, s, "commit: f25b8bf,")
	assert.Contains(t, s, "linux/amd64")
}

func TestInfo_ToMap(t *testing.T) {
	bi := Info{Version: "v1.0.0", Commit: "abc1234"}

	m := bi.ToMap()

	assert.Equal(t, "v1.0.0", m["version"])
	assert.Equal(t, "abc1234", m["commit"])
	assert.Contains(t, m, "dirty_build")
}
