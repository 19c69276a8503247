// Package htmllinks extracts anchor targets from HTML directory listings.
package htmllinks

import (
	"strings"

	"golang.org/x/net/html"
)

// Filter maps an anchor's href to the label to keep. Returning false drops the link.
type Filter func(href string) (string, bool)

// Extract returns the href of every anchor in content, in document order,
// passed through filter. Duplicates are kept. A nil filter keeps every href as is.
//
// The tokenizer tolerates unquoted or single-quoted attributes, self-closing
// anchors, anchors split across lines and anchors nested in <pre> or table markup.
// Content with no anchors yields an empty result.
func Extract(content string, filter Filter) []string {
	var links []string
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			href, ok := hrefOf(z)
			if !ok {
				continue
			}
			if filter != nil {
				href, ok = filter(href)
				if !ok {
					continue
				}
			}
			links = append(links, href)
		}
	}
}

func hrefOf(z *html.Tokenizer) (string, bool) {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "href" {
			return string(val), true
		}
		if !more {
			return "", false
		}
	}
}
