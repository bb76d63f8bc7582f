package fragment

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Attribute and role names from the fragment contract.
const (
	roleAttr      = "role"
	roleOption    = "option"
	disabledAttr  = "aria-disabled"
	labelAttr     = "data-autocomplete-label"
	valueAttr     = "data-autocomplete-value"
	idAttr        = "id"
	hrefAttr      = "href"
	anchorElement = "a"
)

// FallbackListID prefixes generated option ids when the widget has no list
// identity of its own.
const FallbackListID = "typeahead"

// Parser extracts options from HTML fragments. Generated option ids come
// from a counter owned by this parser, so ids stay unique per widget
// instance even with several widgets on one page.
type Parser struct {
	listID  string
	counter uint64
}

// NewParser creates a parser whose generated ids are prefixed with listID.
func NewParser(listID string) *Parser {
	if listID == "" {
		listID = FallbackListID
	}
	return &Parser{listID: listID}
}

// Parse walks the fragment and collects every element carrying an explicit
// option role, in document order.
func (p *Parser) Parse(markup string) (*ResultSet, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse suggestion fragment: %w", err)
	}

	var options []Option
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && attrValue(n, roleAttr) == roleOption {
			options = append(options, p.buildOption(n))
			// Options do not nest.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return NewResultSet(options), nil
}

func (p *Parser) buildOption(n *html.Node) Option {
	label := attrValue(n, labelAttr)
	if label == "" {
		label = textContent(n)
	}
	value := attrValue(n, valueAttr)
	if value == "" {
		value = label
	}

	id := attrValue(n, idAttr)
	if id == "" {
		p.counter++
		id = fmt.Sprintf("%s-option-%d", p.listID, p.counter)
	}

	var href string
	if n.Data == anchorElement {
		href = attrValue(n, hrefAttr)
	}

	return Option{
		ID:       id,
		Label:    label,
		Value:    value,
		Disabled: attrValue(n, disabledAttr) == "true",
		Href:     href,
	}
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates the text nodes under n with whitespace collapsed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
