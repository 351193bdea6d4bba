package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/threadbook/threadbook"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements threadbook.Cleaner at compile time.
var _ threadbook.Cleaner = (*Cleaner)(nil)

// Cleaner strips post markup down to clean text. Before the generic
// cleaning steps it translates the forum's structural blocks into
// single logical nodes: a div.spoiler becomes a spoiler element
// wrapping its hidden content, and a div.bbcode_container becomes an
// element named after its label ("Quote:" → quote, "Code:" → code)
// carrying an author attribute when the block names a quoted author.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean converts rawHTML to text according to opts. Processing order
// is fixed because later steps operate on the output of earlier ones:
// spoiler policy, quote policy, flatten-to-text with ignored tags
// preserved, regex deletions, blank-line trim.
func (c *Cleaner) Clean(rawHTML string, opts threadbook.CleanOptions) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", threadbook.Errorf(threadbook.EPARSE, "failed to parse content markup: %v", err)
	}

	translateSpoilers(doc)
	translateBBCode(doc)

	applySpoilerPolicy(doc, opts.Spoilers)
	applyQuotePolicy(doc, opts)

	ignore := make(map[string]bool, len(opts.IgnoreTags))
	for _, tag := range opts.IgnoreTags {
		ignore[strings.ToLower(tag)] = true
	}

	var b strings.Builder
	body := doc.Find("body")
	if len(body.Nodes) > 0 {
		flatten(body.Nodes[0], ignore, &b)
	}
	text := restoreIgnoredTags(b.String(), opts.IgnoreTags)

	for _, re := range opts.Patterns {
		text = re.ReplaceAllString(text, "")
	}

	if opts.Trim {
		text = trimBlankLines(text)
	}

	return text, nil
}

// translateSpoilers rewrites each div.spoiler into a single logical
// spoiler node. The first child div is the show/hide toggle the forum
// plugin renders; everything after it is the hidden content.
func translateSpoilers(doc *goquery.Document) {
	doc.Find("div.spoiler").Each(func(_ int, s *goquery.Selection) {
		s.ChildrenFiltered("div").First().Remove()

		n := s.Nodes[0]
		n.Data = "spoiler"
		n.Attr = nil
	})
}

// translateBBCode rewrites each div.bbcode_container into a node named
// by the lowercased label from the block's header. Quote blocks carry
// the quoted author as an attribute; hr separators are dropped and the
// message wrapper divs are unwrapped so the node directly holds the
// block's content.
func translateBBCode(doc *goquery.Document) {
	doc.Find("div.bbcode_container").Each(func(_ int, s *goquery.Selection) {
		label := s.ChildrenFiltered("div").First()
		name := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(label.Text()), ":"))
		if name == "" {
			name = "quote"
		}
		label.Remove()

		author := strings.TrimSpace(s.Find("div.bbcode_postedby strong").First().Text())
		s.Find("hr").Remove()

		n := s.Nodes[0]
		n.Data = name
		n.Attr = nil
		if author != "" {
			n.Attr = []html.Attribute{{Key: "author", Val: author}}
		}

		if msg := s.Find("div.message").First(); len(msg.Nodes) > 0 {
			kids := detachChildren(msg.Nodes[0])
			detachChildren(n) // drop the wrapper markup around the message
			appendChildren(n, kids)
		} else if only := onlyChildDiv(n); only != nil {
			unwrapNode(only)
		}
	})
}

func applySpoilerPolicy(doc *goquery.Document, policy threadbook.SpoilerPolicy) {
	doc.Find("spoiler").Each(func(_ int, s *goquery.Selection) {
		switch policy {
		case threadbook.SpoilerRemove:
			removeNode(s.Nodes[0])
		case threadbook.SpoilerFlatten:
			unwrapNode(s.Nodes[0])
		}
	})
}

func applyQuotePolicy(doc *goquery.Document, opts threadbook.CleanOptions) {
	doc.Find("quote").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		switch opts.Quotes {
		case threadbook.QuoteRemove:
			removeNode(n)
		case threadbook.QuoteFlatten:
			unwrapNode(n)
		case threadbook.QuoteWrap:
			if opts.QuoteOpen != "" {
				n.InsertBefore(textNode(opts.QuoteOpen), n.FirstChild)
			}
			if opts.QuoteClose != "" {
				n.AppendChild(textNode(opts.QuoteClose))
			}
			unwrapNode(n)
		}
	})
}

// Placeholder tokens bracket ignored tags through the flatten step.
// Flattening discards all markup, so ignored tags are first encoded as
// unique text tokens, carried through extraction as ordinary text, and
// then replaced with literal open/close markup. The delimiters are
// control characters that cannot appear in parsed HTML text.
func placeholderOpen(tag string) string  { return "\x00" + tag + "\x01" }
func placeholderClose(tag string) string { return "\x00/" + tag + "\x01" }

func restoreIgnoredTags(text string, tags []string) string {
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		text = strings.ReplaceAll(text, placeholderOpen(tag), "<"+tag+">")
		text = strings.ReplaceAll(text, placeholderClose(tag), "</"+tag+">")
	}
	return text
}

// blockTags produce a line break after their content when flattened.
// The logical spoiler/quote/code nodes count as blocks so adjacent
// text does not run together.
var blockTags = map[string]bool{
	"p": true, "div": true, "blockquote": true, "pre": true,
	"li": true, "ul": true, "ol": true, "tr": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"spoiler": true, "quote": true, "code": true,
}

func flatten(n *html.Node, ignore map[string]bool, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
		ignored := ignore[n.Data]
		if ignored {
			b.WriteString(placeholderOpen(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			flatten(c, ignore, b)
		}
		if ignored {
			b.WriteString(placeholderClose(n.Data))
		}
		if blockTags[n.Data] {
			b.WriteByte('\n')
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flatten(c, ignore, b)
	}
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// trimBlankLines collapses runs of multiple consecutive blank lines
// into one and trims surrounding whitespace.
func trimBlankLines(text string) string {
	return strings.TrimSpace(blankRunRe.ReplaceAllString(text, "\n\n"))
}

// Node surgery helpers over the x/net/html tree goquery exposes.

func textNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

func detachChildren(n *html.Node) []*html.Node {
	var kids []*html.Node
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		kids = append(kids, c)
		c = next
	}
	return kids
}

func appendChildren(n *html.Node, kids []*html.Node) {
	for _, k := range kids {
		n.AppendChild(k)
	}
}

// unwrapNode replaces a node with its children.
func unwrapNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for _, k := range detachChildren(n) {
		parent.InsertBefore(k, n)
	}
	parent.RemoveChild(n)
}

func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// onlyChildDiv returns n's single element child when that child is a
// div with no element siblings, ignoring whitespace-only text nodes.
func onlyChildDiv(n *html.Node) *html.Node {
	var only *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if only != nil || c.Data != "div" {
				return nil
			}
			only = c
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		}
	}
	return only
}
