package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractMainText parses HTML and returns the posting body as text.
// Headings are prefixed with "## " and list items with "- " so section detection keeps working.
func ExtractMainText(html string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(strings.Join(NoiseSelectors(platform), ", ")).Remove()

	var main *goquery.Selection
	for _, selector := range ContentSelectors(platform) {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	main.Find("h1, h2, h3, h4, h5, h6, strong:only-child, b:only-child").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n## ")
		s.AppendHtml("\n")
	})
	main.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n- ")
	})
	main.Find("br").ReplaceWithHtml("\n")
	main.Find("p, div, tr, ul, ol").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(main.Text()), nil
}
