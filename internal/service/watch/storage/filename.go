package storage

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/darkkaiser/pricepulse-server/internal/service/watch"
	"github.com/iancoleman/strcase"
)

// maxNameBytes 파일명에서 상품 ID가 차지할 수 있는 최대 바이트 수입니다.
// 파일 시스템의 경로 길이 제한(일반적으로 255바이트)을 고려한 값입니다.
const maxNameBytes = 64

// filenameReplacer Kebab-Case 변환 후에도 남을 수 있는 파일 시스템 위험 문자를 치환합니다.
// 경로 구분자와 Windows 예약 문자가 대상입니다.
var filenameReplacer = strings.NewReplacer(
	"..", "--",
	"/", "-",
	"\\", "-",
	"|", "-",
	"<", "-",
	">", "-",
	":", "-",
	"\"", "-",
	"?", "-",
	"*", "-",
)

// generateFilename 감시 상품 ID로부터 안전하고 고유한 파일명을 생성합니다.
//
// 사람이 읽을 수 있도록 ID를 Kebab-Case로 정제한 이름에, 원본 ID의 64비트 해시를
// 덧붙입니다. 해시는 정제 과정에서 서로 다른 ID가 같은 이름이 되는 충돌과
// 대소문자를 구분하지 않는 파일 시스템에서의 충돌을 방지합니다.
//
// 생성 패턴: "item-{정제된ID}-{16자리해시}.json"
func generateFilename(id watch.ItemID) string {
	name := sanitizeName(string(id))
	name = truncateByBytes(name, maxNameBytes)

	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(id))

	return fmt.Sprintf("item-%s-%016x.json", name, hasher.Sum64())
}

// sanitizeName 파일명으로 안전하게 사용할 수 있도록 문자열을 정제합니다.
func sanitizeName(s string) string {
	kebab := strcase.ToKebab(s)

	// 제어 문자(0x00-0x1F)와 DEL(0x7F)은 일부 파일 시스템이 허용하지 않습니다.
	kebab = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '-'
		}
		return r
	}, kebab)

	return filenameReplacer.Replace(kebab)
}

// truncateByBytes 문자열을 UTF-8 문자가 중간에 잘리지 않도록 바이트 길이 기준으로 자릅니다.
func truncateByBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	var total int
	for _, r := range s {
		size := len(string(r))
		if total+size > limit {
			break
		}
		total += size
	}

	return s[:total]
}
