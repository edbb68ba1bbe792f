package versions

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultDownloadsURL is the python.org page listing active releases.
const DefaultDownloadsURL = "https://www.python.org/downloads/"

// Python resolves the Python release series that are still maintained.
type Python struct {
	client Client
	url    string
}

// NewPython returns a lookup against pageURL, or DefaultDownloadsURL when
// pageURL is empty.
func NewPython(client Client, pageURL string) *Python {
	if pageURL == "" {
		pageURL = DefaultDownloadsURL
	}
	return &Python{client: client, url: pageURL}
}

// ActiveVersions fetches the downloads page and returns the active Python 3
// release series in page order.
func (p *Python) ActiveVersions(ctx context.Context) ([]string, error) {
	body, err := p.client.Get(ctx, p.url)
	if err != nil {
		return nil, fmt.Errorf("fetching python releases: %w", err)
	}
	return ParseActiveVersions(strings.NewReader(body))
}

// ParseActiveVersions extracts release labels from the active releases
// widget of a python.org downloads page. The labels are the text of
// span.release-version elements inside ol > li under
// div.row.active-release-list-widget. Empty labels and Python 2 series are
// dropped.
func ParseActiveVersions(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing python releases page: %w", err)
	}

	var found []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if isElement(n, atom.Div, "row", "active-release-list-widget") {
			found = append(found, releaseLabels(n)...)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	versions := make([]string, 0, len(found))
	for _, label := range found {
		if label == "" || strings.HasPrefix(label, "2") {
			continue
		}
		versions = append(versions, label)
	}
	return versions, nil
}

// releaseLabels applies the "> ol > li > span.release-version" part of the
// selector to a widget node.
func releaseLabels(widget *html.Node) []string {
	var labels []string
	for _, ol := range children(widget, atom.Ol) {
		for _, li := range children(ol, atom.Li) {
			for _, span := range children(li, atom.Span, "release-version") {
				labels = append(labels, strings.TrimSpace(text(span)))
			}
		}
	}
	return labels
}

func children(n *html.Node, tag atom.Atom, classes ...string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, tag, classes...) {
			out = append(out, c)
		}
	}
	return out
}

func isElement(n *html.Node, tag atom.Atom, classes ...string) bool {
	if n.Type != html.ElementNode || n.DataAtom != tag {
		return false
	}
	if len(classes) == 0 {
		return true
	}
	var have []string
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			have = strings.Fields(attr.Val)
			break
		}
	}
	for _, class := range classes {
		if !slices.Contains(have, class) {
			return false
		}
	}
	return true
}

func text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
