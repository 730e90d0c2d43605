package mailer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText flattens the notification HTML into a text/plain alternative:
// one line per heading, paragraph or table row.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	var lines []string
	doc.Find("h1,h2,h3,p,tr").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "tr" {
			var cells []string
			s.Find("td,th").Each(func(_ int, td *goquery.Selection) {
				if v := strings.TrimSpace(td.Text()); v != "" {
					cells = append(cells, v)
				}
			})
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " "))
			}
			return
		}
		if v := strings.Join(strings.Fields(s.Text()), " "); v != "" {
			lines = append(lines, v)
		}
	})
	return strings.Join(lines, "\n")
}
