package threadbook

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SpoilerPolicy controls how spoiler blocks are cleaned.
type SpoilerPolicy int

const (
	// SpoilerRemove drops spoiler blocks entirely, container and
	// contents. This is the default.
	SpoilerRemove SpoilerPolicy = iota

	// SpoilerFlatten removes the spoiler wrapper but keeps its inner
	// text inline as ordinary content.
	SpoilerFlatten
)

// QuotePolicy controls how quoted-content blocks are cleaned.
type QuotePolicy int

const (
	// QuoteRemove drops quoted blocks entirely. This is the default.
	QuoteRemove QuotePolicy = iota

	// QuoteFlatten keeps quoted text inline in the surrounding text.
	QuoteFlatten

	// QuoteWrap keeps quoted text delimited by the QuoteOpen and
	// QuoteClose strings, mimicking a markup round-trip.
	QuoteWrap
)

// CleanOptions configures content cleaning. The zero value removes
// spoilers and quotes but does not trim blank lines; use
// DefaultCleanOptions for the standard configuration.
type CleanOptions struct {
	Spoilers SpoilerPolicy
	Quotes   QuotePolicy

	// QuoteOpen and QuoteClose delimit retained quoted text when
	// Quotes is QuoteWrap.
	QuoteOpen  string
	QuoteClose string

	// IgnoreTags lists tag names preserved as literal markers rather
	// than unwrapped to plain text, so a later formatting pass can
	// re-apply emphasis.
	IgnoreTags []string

	// Patterns are deleted from the final text wherever they match.
	Patterns []*regexp.Regexp

	// Trim collapses runs of multiple consecutive blank lines into
	// one and trims surrounding whitespace.
	Trim bool
}

// DefaultCleanOptions returns the standard cleaning configuration:
// spoilers and quotes removed, blank-line runs trimmed.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		Spoilers: SpoilerRemove,
		Quotes:   QuoteRemove,
		Trim:     true,
	}
}

// Fingerprint returns a stable hash of the options, used to key
// per-post clean-content caches. Two option values with the same
// fingerprint produce identical cleaning results.
func (o CleanOptions) Fingerprint() uint64 {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(o.Spoilers)))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(int(o.Quotes)))
	b.WriteByte('|')
	b.WriteString(o.QuoteOpen)
	b.WriteByte('|')
	b.WriteString(o.QuoteClose)
	b.WriteByte('|')
	for _, tag := range o.IgnoreTags {
		b.WriteString(tag)
		b.WriteByte(',')
	}
	b.WriteByte('|')
	for _, re := range o.Patterns {
		b.WriteString(re.String())
		b.WriteByte(',')
	}
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(o.Trim))
	return xxhash.Sum64String(b.String())
}

// Cleaner produces cleaned text from a post's raw content markup.
type Cleaner interface {
	// Clean strips rawHTML down to text according to opts, preserving
	// semantic structures (quotes, spoilers, code blocks) as the
	// options direct.
	Clean(rawHTML string, opts CleanOptions) (string, error)
}
