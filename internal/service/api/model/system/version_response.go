package system

// VersionResponse 서버 버전 정보 응답
type VersionResponse struct {
	// 애플리케이션 버전
	Version string `json:"version"`
	// Git 커밋 해시
	Commit string `json:"commit"`
	// 빌드 시간(UTC, RFC3339)
	BuildDate string `json:"build_date"`
	// 컴파일러 버전
	GoVersion string `json:"go_version"`
}
