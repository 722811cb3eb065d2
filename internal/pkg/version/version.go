// Package version 빌드 시점에 주입된 버전 메타데이터와 실행 환경 정보를 제공합니다.
//
// 버전 정보는 링커 플래그(-ldflags)로 주입되며, 주입이 누락된 환경(go run 등)에서는
// 실행 파일의 디버그 메타데이터(debug.ReadBuildInfo)에서 VCS 정보를 추출하여 보강합니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const unknown = "unknown"

// 빌드 시점에 링커 플래그로 주입되는 변수들입니다.
// 애플리케이션 로직에서는 직접 접근하지 말고 Get()을 사용해야 합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = "" // clean 또는 dirty
	buildDate     = ""
)

// globalBuildInfo 전역 빌드 정보 (Thread-Safe)
var globalBuildInfo atomic.Value

// readBuildInfo 테스트에서 교체 가능하도록 변수로 선언합니다.
var readBuildInfo = debug.ReadBuildInfo

func init() {
	globalBuildInfo.Store(newInfo())
}

// Info 애플리케이션의 빌드 정보입니다.
// /health 같은 시스템 API 응답과 기동 로그 출력에 사용됩니다.
type Info struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	BuildDate  string `json:"build_date"`
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	DirtyBuild bool   `json:"dirty_build"`
}

// Get 애플리케이션의 빌드 정보를 반환합니다.
func Get() Info {
	return globalBuildInfo.Load().(Info)
}

// Version 애플리케이션의 버전 문자열을 반환합니다.
func Version() string {
	return Get().Version
}

// newInfo 주입된 변수와 런타임 환경, 디버그 메타데이터를 종합하여 빌드 정보를 구성합니다.
func newInfo() Info {
	bi := Info{
		Version:    strings.TrimSpace(appVersion),
		Commit:     strings.TrimSpace(gitCommitHash),
		BuildDate:  strings.TrimSpace(buildDate),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		DirtyBuild: strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	}

	// ldflags 주입이 없더라도 VCS 메타데이터로 최소한의 정보를 확보합니다.
	if val, ok := readBuildInfo(); ok {
		for _, setting := range val.Settings {
			switch setting.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = setting.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" {
					bi.BuildDate = setting.Value
				}
			case "vcs.modified":
				if setting.Value == "true" {
					bi.DirtyBuild = true
				}
			}
		}
		if bi.Version == "" && val.Main.Version != "" && val.Main.Version != "(devel)" {
			bi.Version = val.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}
	if bi.BuildDate == "" {
		bi.BuildDate = unknown
	}

	return bi
}

// ToMap 빌드 정보를 구조적 로깅에 적합한 맵 형태로 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":     i.Version,
		"commit":      i.Commit,
		"build_date":  i.BuildDate,
		"go_version":  i.GoVersion,
		"os":          i.OS,
		"arch":        i.Arch,
		"dirty_build": i.DirtyBuild,
	}
}

// String 빌드 정보를 사람이 읽기 쉬운 한 줄 문자열로 요약합니다.
func (i Info) String() string {
	ver := i.Version
	if i.DirtyBuild {
		ver += "+dirty"
	}

	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}

	return fmt.Sprintf("%s (commit: %s, built: %s, %s %s/%s)",
		ver, commit, i.BuildDate, i.GoVersion, i.OS, i.Arch)
}
