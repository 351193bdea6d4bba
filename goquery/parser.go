// Package goquery implements thread parsing and content normalization
// for the vBulletin template family using the goquery HTML library.
package goquery

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/threadbook/threadbook"
)

// postIDPrefix prefixes the id attribute of every post element.
const postIDPrefix = "post_"

// Ensure Parser implements threadbook.ThreadParser at compile time.
var _ threadbook.ThreadParser = (*Parser)(nil)

// Parser parses vBulletin thread markup into threadbook.Thread values.
// Posts are li elements whose id attribute is "post_" followed by the
// post number; the username marker, datetime rendering and content
// block are nested elements with well-known classes.
type Parser struct {
	dateLayout string
	timeLayout string
	resolver   threadbook.Resolver
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithDateLayout sets the Go reference layout used to parse the date
// portion of absolute timestamps. Without it, dates other than
// today/yesterday remain unresolved.
func WithDateLayout(layout string) ParserOption {
	return func(p *Parser) { p.dateLayout = layout }
}

// WithTimeLayout sets the Go reference layout used to parse the time
// portion of absolute timestamps. Without it, times remain unresolved.
func WithTimeLayout(layout string) ParserOption {
	return func(p *Parser) { p.timeLayout = layout }
}

// WithNow substitutes the clock used to resolve relative timestamps.
func WithNow(now func() time.Time) ParserOption {
	return func(p *Parser) { p.resolver.Now = now }
}

// NewParser creates a new Parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseThread parses rawHTML into a Thread. Markup with zero
// recognizable post elements is EPARSE: an apparently valid thread
// with no posts is malformed input, not an empty thread. A single
// malformed post aborts the whole parse, since ranking and ordering
// assume a complete post set.
func (p *Parser) ParseThread(rawHTML string, threadID int) (*threadbook.Thread, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, threadbook.Errorf(threadbook.EPARSE, "failed to parse thread markup: %v", err)
	}

	thread := threadbook.NewThread(threadID)
	thread.SetTitle(extractTitle(doc))

	sel := doc.Find(`li[id^="` + postIDPrefix + `"]`)
	if sel.Length() == 0 {
		return nil, threadbook.Errorf(threadbook.EPARSE, "no posts found in thread %d", threadID)
	}

	var parseErr error
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		post, authorName, err := p.parsePost(s)
		if err != nil {
			parseErr = err
			return false
		}
		if err := thread.Append(authorName, post); err != nil {
			parseErr = err
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return thread, nil
}

// parsePost extracts one post from its li element. The username
// marker, numeric identifier and content block are required; a missing
// datetime rendering is tolerated and leaves the timestamp unresolved.
func (p *Parser) parsePost(s *goquery.Selection) (*threadbook.Post, string, error) {
	idAttr, _ := s.Attr("id")
	number, err := strconv.Atoi(strings.TrimPrefix(idAttr, postIDPrefix))
	if err != nil {
		return nil, "", threadbook.Errorf(threadbook.EPARSE, "post identifier %q is not numeric", idAttr)
	}

	username := s.Find("span.username").First()
	if username.Length() == 0 {
		return nil, "", threadbook.Errorf(threadbook.EPARSE, "post %d has no username marker", number)
	}
	authorName := strings.TrimSpace(username.Text())
	if authorName == "" {
		return nil, "", threadbook.Errorf(threadbook.EPARSE, "post %d has an empty username marker", number)
	}

	content := s.Find("blockquote.restore").First()
	if content.Length() == 0 {
		return nil, "", threadbook.Errorf(threadbook.EPARSE, "post %d has no content block", number)
	}

	// Serializing the subtree is the post's defensive copy: later
	// mutation of the parsed tree cannot corrupt it.
	rawHTML, err := content.Html()
	if err != nil {
		return nil, "", threadbook.Errorf(threadbook.EPARSE, "post %d content could not be serialized: %v", number, err)
	}

	var ts threadbook.Timestamp
	if dt := s.Find("div.datetime").First(); dt.Length() > 0 {
		ts, err = p.resolver.Resolve(dt.Text(), p.dateLayout, p.timeLayout)
		if err != nil {
			return nil, "", err
		}
	}

	post, err := threadbook.NewPost(number, ts, rawHTML, content.Nodes[0])
	if err != nil {
		return nil, "", err
	}
	return post, authorName, nil
}

// extractTitle pulls the thread title from the document title element,
// dropping the forum name suffix the template appends. Empty is fine;
// callers fall back to an id-derived title.
func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if idx := strings.Index(title, " - "); idx > 0 {
		title = title[:idx]
	}
	return title
}
