package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/darkkaiser/pricepulse-server/pkg/strutil"
)

// Document 다운로드된 상품 페이지의 원본 HTML 텍스트와 파싱된 DOM을 함께 보관합니다.
//
// 모든 추출 전략은 이 불변 객체만을 입력으로 받으며, 전략 간에 공유하는
// 가변 상태가 없으므로 별도의 잠금 없이 병렬로 사용할 수 있습니다.
type Document struct {
	// RawHTML 디코딩이 완료된 원본 HTML 텍스트입니다. 정규식 기반 전략이 사용합니다.
	RawHTML string

	sel *goquery.Document
}

// NewDocument HTML 텍스트를 파싱하여 Document를 생성합니다.
func NewDocument(html string) (*Document, error) {
	sel, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "HTML 문서 파싱이 실패하였습니다")
	}

	return &Document{
		RawHTML: html,
		sel:     sel,
	}, nil
}

// MetaContent 지정된 property 또는 name 속성을 갖는 meta 태그의 content 값을 반환합니다.
// 일치하는 태그가 없으면 빈 문자열을 반환합니다.
func (d *Document) MetaContent(propertyName string) string {
	selector := `meta[property="` + propertyName + `"], meta[name="` + propertyName + `"]`

	content, _ := d.sel.Find(selector).First().Attr("content")
	return content
}

// Title 문서의 <title> 요소 텍스트를 반환합니다.
// 내부의 연속된 공백은 하나로 축약되고 양끝 공백은 제거됩니다.
func (d *Document) Title() string {
	return strutil.NormalizeSpaces(d.sel.Find("title").First().Text())
}
