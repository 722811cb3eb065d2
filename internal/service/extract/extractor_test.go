package extract

import (
	"context"
	"strings"
	"testing"

	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDownloader 네트워크 없이 고정된 HTML 또는 에러를 반환합니다.
type stubDownloader struct {
	html string
	err  error
}

func (d *stubDownloader) Download(_ context.Context, _ string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	return d.html, nil
}

func extractFromHTML(t *testing.T, html, pageURL string) *Result {
	t.Helper()

	e := NewExtractor(&stubDownloader{html: html})

	result, err := e.Extract(context.Background(), pageURL)
	require.NoError(t, err)
	require.NotNil(t, result)

	return result
}

func TestExtract_JSONLD(t *testing.T) {
	const html = `
	<html>
	<head><title>Test Product</title></head>
	<body>
	<script type="application/ld+json">
	{
		"@type": "Product",
		"name": "MacBook Air",
		"offers": {"@type": "Offer", "price": "1299.00", "priceCurrency": "USD"}
	}
	</script>
	</body>
	</html>`

	result := extractFromHTML(t, html, "https://www.example.com/item/1")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 1299.0, *result.CurrentPrice, 0.0001)
	require.NotNil(t, result.CurrencyCode)
	assert.Equal(t, "USD", *result.CurrencyCode)
	assert.Equal(t, "example.com", result.Store)
	assert.Equal(t, "Test Product", result.ProductName)
}

func TestExtract_JSONLD_숫자가격과offers배열(t *testing.T) {
	const html = `
	<html>
	<script type="application/ld+json">
	{"@type": ["Product", "Thing"], "offers": [{"price": 899.99, "priceCurrency": "EUR"}]}
	</script>
	</html>`

	result := extractFromHTML(t, html, "https://shop.example.de/p/2")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 899.99, *result.CurrentPrice, 0.0001)
	require.NotNil(t, result.CurrencyCode)
	assert.Equal(t, "EUR", *result.CurrencyCode)
}

func TestExtract_JSONLD_lowPrice대체(t *testing.T) {
	const html = `
	<html>
	<script type="application/ld+json">
	{"@type": "Product", "offers": {"lowPrice": "450.00", "highPrice": "600.00", "priceCurrency": "USD"}}
	</script>
	</html>`

	result := extractFromHTML(t, html, "https://example.com/p")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 450.0, *result.CurrentPrice, 0.0001)
}

func TestExtract_JSONLD_통화코드원형유지(t *testing.T) {
	const html = `
	<html>
	<script type="application/ld+json">
	{"@type": "Product", "offers": {"price": "10.00", "priceCurrency": "usd"}}
	</script>
	</html>`

	result := extractFromHTML(t, html, "https://example.com/p")

	require.NotNil(t, result.CurrencyCode)
	assert.Equal(t, "usd", *result.CurrencyCode, "구조화 데이터의 통화 코드는 가공 없이 사용해야 합니다")
}

func TestExtract_JSONLD_깨진블록건너뛰기(t *testing.T) {
	const html = `
	<html>
	<script type="application/ld+json">{not valid json</script>
	<script type="application/ld+json">
	{"@type": "Product", "offers": {"price": "77.00", "priceCurrency": "USD"}}
	</script>
	</html>`

	result := extractFromHTML(t, html, "https://example.com/p")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 77.0, *result.CurrentPrice, 0.0001)
}

func TestExtract_메타태그(t *testing.T) {
	const html = `
	<html>
	<head>
		<meta property="og:title" content="Sony Headphones">
		<meta property="product:price:amount" content="249.99">
		<meta property="product:price:currency" content="gbp">
	</head>
	</html>`

	result := extractFromHTML(t, html, "https://www.store.co.uk/sony")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 249.99, *result.CurrentPrice, 0.0001)
	require.NotNil(t, result.CurrencyCode)
	assert.Equal(t, "GBP", *result.CurrencyCode, "메타 태그의 통화 코드는 대문자로 정규화되어야 합니다")
	assert.Equal(t, "Sony Headphones", result.ProductName)
	assert.Equal(t, "store.co.uk", result.Store)
}

func TestExtract_메타태그_쉼표소수점(t *testing.T) {
	const html = `
	<html>
	<head>
		<meta property="og:price:amount" content="49,90">
		<meta property="og:price:currency" content="EUR">
	</head>
	</html>`

	result := extractFromHTML(t, html, "https://example.de/p")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 49.90, *result.CurrentPrice, 0.0001)
}

func TestExtract_가격요소(t *testing.T) {
	const html = `
	<html>
	<head><title>  Gaming   Chair  </title></head>
	<body><div class="cost">₽89 990</div></body>
	</html>`

	result := extractFromHTML(t, html, "https://shop.ru/chair")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 89990.0, *result.CurrentPrice, 0.0001)
	require.NotNil(t, result.CurrencyCode)
	assert.Equal(t, "RUB", *result.CurrencyCode)
	assert.Equal(t, "Gaming Chair", result.ProductName, "title의 연속 공백은 하나로 축약되어야 합니다")
}

func TestExtract_가격요소_itemprop(t *testing.T) {
	const html = `<html><body><span itemprop="PriceAmount">$25.50</span></body></html>`

	result := extractFromHTML(t, html, "https://example.com/p")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 25.50, *result.CurrentPrice, 0.0001)
	require.NotNil(t, result.CurrencyCode)
	assert.Equal(t, "USD", *result.CurrencyCode)
}

func TestExtract_전략우선순위(t *testing.T) {
	// 구조화 데이터와 본문 정규식 매칭이 충돌하면 구조화 데이터가 우선합니다.
	const html = `
	<html>
	<script type="application/ld+json">
	{"@type": "Product", "offers": {"price": "1299.00", "priceCurrency": "USD"}}
	</script>
	<body>Special offer: $999.00</body>
	</html>`

	result := extractFromHTML(t, html, "https://example.com/p")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 1299.0, *result.CurrentPrice, 0.0001)
}

func TestExtract_정규식폴백_노이즈필터(t *testing.T) {
	padding := strings.Repeat("x", 120)
	html := `<html><body><p>was $199.00</p>` + padding + `<p>$149.00</p></body></html>`

	result := extractFromHTML(t, html, "https://example.com/p")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 149.0, *result.CurrentPrice, 0.0001, "노이즈 문맥의 과거 가격은 건너뛰어야 합니다")
}

func TestExtract_정규식폴백_전부노이즈면첫매칭사용(t *testing.T) {
	const html = `<html><body><p>shipping cost: $9.99</p></body></html>`

	result := extractFromHTML(t, html, "https://example.com/p")

	require.NotNil(t, result.CurrentPrice)
	assert.InDelta(t, 9.99, *result.CurrentPrice, 0.0001, "모든 매칭이 노이즈여도 첫 매칭으로 대답해야 합니다")
}

func TestExtract_정규식폴백_노이즈아닌매칭이무효면가격없음(t *testing.T) {
	padding := strings.Repeat("x", 120)
	html := `<html><body><p>was $199.00</p>` + padding + `<p>$0</p></body></html>`

	result := extractFromHTML(t, html, "https://example.com/p")

	assert.Nil(t, result.CurrentPrice, "노이즈가 아닌 매칭이 있었으면 노이즈 가격으로 대답해서는 안 됩니다")
	assert.Nil(t, result.CurrencyCode)
}

func TestExtract_가격없음은정상결과(t *testing.T) {
	const html = `
	<html>
	<head><title>About Us</title></head>
	<body>We sell nice things.</body>
	</html>`

	result := extractFromHTML(t, html, "https://www.example.com/about")

	assert.Nil(t, result.CurrentPrice)
	assert.Nil(t, result.CurrencyCode)
	assert.Equal(t, "example.com", result.Store)
	assert.Equal(t, "About Us", result.ProductName)
}

func TestExtract_제목없으면쇼핑몰이름사용(t *testing.T) {
	result := extractFromHTML(t, `<html><body></body></html>`, "https://www.example.com/p")

	assert.Equal(t, "example.com", result.ProductName)
}

func TestExtract_상품명HTML태그정리(t *testing.T) {
	const html = `
	<html>
	<head><meta property="og:title" content="&lt;b&gt;공기청정기&lt;/b&gt; 본체 &amp;amp; 필터"></head>
	</html>`

	result := extractFromHTML(t, html, "https://example.com/p")

	assert.Equal(t, "공기청정기 본체 & 필터", result.ProductName)
}

func TestExtract_상품명최대길이(t *testing.T) {
	longTitle := strings.Repeat("가", 300)
	html := `<html><head><title>` + longTitle + `</title></head></html>`

	result := extractFromHTML(t, html, "https://example.com/p")

	assert.Equal(t, maxProductNameLength, len([]rune(result.ProductName)))
}

func TestExtract_멱등성(t *testing.T) {
	const html = `
	<html>
	<script type="application/ld+json">
	{"@type": "Product", "offers": {"price": "55.00", "priceCurrency": "USD"}}
	</script>
	</html>`

	e := NewExtractor(&stubDownloader{html: html})

	first, err := e.Extract(context.Background(), "https://example.com/p")
	require.NoError(t, err)
	second, err := e.Extract(context.Background(), "https://example.com/p")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_다운로드실패전파(t *testing.T) {
	downloadErr := apperrors.New(apperrors.Unavailable, "원격 서버가 일시적으로 요청을 처리할 수 없습니다")
	e := NewExtractor(&stubDownloader{err: downloadErr})

	result, err := e.Extract(context.Background(), "https://example.com/p")

	require.Error(t, err)
	assert.Nil(t, result, "다운로드 실패 시 부분 결과를 반환하지 않아야 합니다")
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
}

func TestNormalizeURL(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"스킴 없음", "example.com/item", "https://example.com/item", false},
		{"https 유지", "https://example.com/item", "https://example.com/item", false},
		{"http 유지", "http://example.com", "http://example.com", false},
		{"양끝 공백 제거", "  example.com  ", "https://example.com", false},
		{"빈 문자열", "", "", true},
		{"호스트 없음", "https://", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeURL(tc.input)

			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestStoreFromURL(t *testing.T) {
	assert.Equal(t, "example.com", storeFromURL("https://www.example.com/item"))
	assert.Equal(t, "shop.example.co.kr", storeFromURL("https://shop.example.co.kr/p/1"))
	assert.Equal(t, "example.com:8080", storeFromURL("https://www.example.com:8080/p"))
}
