// Package richtext converts task descriptions between the stored HTML
// fragment, the markdown typed into editors, and plain display lines.
//
// Descriptions are stored verbatim. Sanitize must be applied before a stored
// fragment is written into an HTML page.
package richtext

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Bullet prefixes list items in display lines
const Bullet = "• "

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	policy = bluemonday.UGCPolicy()
)

// FromMarkdown renders editor text as an HTML fragment.
// Raw HTML in the input is not passed through.
func FromMarkdown(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// Sanitize strips scripts, event handlers and other unsafe markup
func Sanitize(fragment string) string {
	return policy.Sanitize(fragment)
}

// Lines flattens a fragment into display lines; list items get a bullet
func Lines(fragment string) []string {
	return flatten(fragment, Bullet)
}

// PlainText returns Lines joined by newlines
func PlainText(fragment string) string {
	return strings.Join(Lines(fragment), "\n")
}

// ToMarkdown converts a stored fragment back into editable text
func ToMarkdown(fragment string) string {
	return strings.Join(flatten(fragment, "- "), "\n")
}

func flatten(fragment, bullet string) []string {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Split(fragment, "\n")
	}
	w := &lineWriter{bullet: bullet}
	w.walk(doc.Find("body"), 0)
	w.flush()
	return w.lines
}

type lineWriter struct {
	bullet string
	lines  []string
	cur    strings.Builder
	prefix string
}

func (w *lineWriter) flush() {
	line := strings.Join(strings.Fields(w.cur.String()), " ")
	w.cur.Reset()
	if line != "" {
		w.lines = append(w.lines, w.prefix+line)
	}
}

func (w *lineWriter) walk(sel *goquery.Selection, depth int) {
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		switch name := goquery.NodeName(c); name {
		case "#text":
			w.cur.WriteString(c.Text())
		case "script", "style", "#comment":
		case "br":
			w.flush()
		case "li":
			w.flush()
			saved := w.prefix
			w.prefix = strings.Repeat("  ", depth) + w.bullet
			w.walk(c, depth+1)
			w.flush()
			w.prefix = saved
		case "ul", "ol":
			w.flush()
			w.walk(c, depth)
			w.flush()
		case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre":
			w.flush()
			w.walk(c, depth)
			w.flush()
		default:
			w.walk(c, depth)
		}
	})
}
