// Package extract 상품 페이지 HTML에서 가격과 통화, 상품명을 추출하는 엔진입니다.
//
// 서로 다른 쇼핑몰의 제멋대로인 HTML에서 가격을 복원하기 위해 신뢰도 순으로
// 정렬된 전략 캐스케이드를 사용합니다. 구조화 데이터(JSON-LD)가 최우선이고,
// 메타 태그, 가격 요소 휴리스틱을 거쳐 마지막으로 정규식 전체 스캔을 시도합니다.
package extract

import (
	"context"
	"net/url"
	"strings"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	"github.com/darkkaiser/pricepulse-server/pkg/strutil"
	log "github.com/sirupsen/logrus"
)

// component 로깅용 컴포넌트 이름
const component = "extract"

// maxProductNameLength 상품명의 최대 길이(룬 단위)입니다.
const maxProductNameLength = 256

// Result 하나의 추출 호출이 반환하는 최종 결과입니다.
//
// 가격과 통화가 null인 것은 정상적인 결과입니다. (추출은 시도했으나 찾지 못함)
// 다운로드 실패만이 에러로 전파됩니다.
type Result struct {
	// Store 상품 페이지 URL의 호스트에서 유도한 쇼핑몰 이름입니다.
	Store string `json:"store"`

	// ProductName 추출된 상품명입니다. 제목을 찾지 못하면 Store 값으로 대체됩니다.
	ProductName string `json:"product_name"`

	// CurrentPrice 추출된 현재 가격입니다. 찾지 못하면 null입니다.
	CurrentPrice *float64 `json:"current_price"`

	// CurrencyCode 추출된 통화 코드입니다. 판별하지 못하면 null입니다.
	CurrencyCode *string `json:"currency_code"`
}

// Downloader 상품 페이지의 HTML 텍스트를 가져오는 인터페이스입니다.
type Downloader interface {
	Download(ctx context.Context, pageURL string) (string, error)
}

// Extractor URL을 받아 다운로드와 전략 실행을 조율하는 추출 파이프라인입니다.
//
// 내부에 공유 가변 상태가 없으므로 여러 고루틴에서 동시에 사용할 수 있습니다.
type Extractor struct {
	downloader Downloader
	strategies []Strategy
}

// NewExtractor 기본 전략 목록을 갖는 Extractor를 생성합니다.
func NewExtractor(downloader Downloader) *Extractor {
	if downloader == nil {
		panic("extract: downloader는 nil일 수 없습니다")
	}

	return &Extractor{
		downloader: downloader,
		strategies: defaultStrategies(),
	}
}

// Extract 지정된 URL의 상품 페이지를 다운로드하고 가격 정보를 추출합니다.
//
// 다운로드 실패는 에러로 전파되며 부분 결과를 반환하지 않습니다.
// 다운로드에 성공했으나 가격을 찾지 못한 경우는 가격 필드가 null인 정상 결과입니다.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Result, error) {
	pageURL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	html, err := e.downloader.Download(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := NewDocument(html)
	if err != nil {
		return nil, err
	}

	result := e.ExtractFromDocument(doc, pageURL)
	return result, nil
}

// ExtractFromDocument 이미 다운로드된 문서에서 가격 정보를 추출합니다.
func (e *Extractor) ExtractFromDocument(doc *Document, pageURL string) *Result {
	store := storeFromURL(pageURL)

	result := &Result{
		Store:       store,
		ProductName: productName(doc, store),
	}

	for _, strategy := range e.strategies {
		pp := strategy.Attempt(doc)
		if pp == nil {
			continue
		}

		result.CurrentPrice = &pp.Amount
		if pp.Currency != "" {
			result.CurrencyCode = &pp.Currency
		}

		applog.WithComponentAndFields(component, log.Fields{
			"url":      pageURL,
			"strategy": strategy.Name(),
			"price":    pp.Amount,
			"currency": pp.Currency,
		}).Debug("가격 추출 성공")

		break
	}

	if result.CurrentPrice == nil {
		applog.WithComponentAndFields(component, log.Fields{
			"url": pageURL,
		}).Debug("모든 전략이 가격을 찾지 못했습니다")
	}

	return result
}

// NormalizeURL 사용자 입력 URL을 정규화합니다. 스킴이 없으면 https://를 접두합니다.
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", apperrors.New(apperrors.InvalidInput, "URL이 입력되지 않았습니다")
	}

	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", apperrors.Newf(apperrors.InvalidInput, "올바른 URL 형식이 아닙니다 (url: %s)", rawURL)
	}

	return rawURL, nil
}

// storeFromURL URL의 호스트에서 쇼핑몰 이름을 유도합니다. 선행 "www."는 제거합니다.
func storeFromURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	return strings.TrimPrefix(parsed.Host, "www.")
}

// productName 제목 우선순위 체인(og:title → twitter:title → <title>)으로 상품명을 결정합니다.
// 제목에 섞여 들어온 HTML 태그와 엔티티는 순수 텍스트로 정리합니다.
// 어느 것도 없으면 쇼핑몰 이름으로 대체하며, 최대 길이를 초과하면 잘라냅니다.
func productName(doc *Document, store string) string {
	title := doc.MetaContent("og:title")
	if title == "" {
		title = doc.MetaContent("twitter:title")
	}
	if title == "" {
		title = doc.Title()
	}

	title = strutil.StripHTMLTags(title)
	if title = strings.TrimSpace(title); title == "" {
		title = store
	}

	return strutil.TruncateRunes(title, maxProductNameLength)
}
