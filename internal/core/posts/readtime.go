package posts

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Average adult reading speed; the rounded-up quotient becomes the
// "N min read" label.
const wordsPerMinute = 200

// DeriveReadTime estimates reading time for HTML post content. Markup is
// stripped before counting words; if the content does not parse as HTML
// it is counted as-is.
func DeriveReadTime(content string) string {
	text := content
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
		text = doc.Text()
	}

	words := len(strings.Fields(text))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
