package threadbook

import "sync"

// Post is one forum message. Posts are created during thread parsing
// and are immutable afterward, except for the lazily computed
// clean-content cache. The raw content is an owned snapshot taken at
// construction, so later mutation of the source tree cannot corrupt
// it.
type Post struct {
	number    int
	author    *Author
	timestamp Timestamp
	rawHTML   string
	origin    any // identity of the source markup element

	mu    sync.Mutex
	clean map[uint64]string
}

// NewPost creates a Post. number must be >= 1 (post 1 is the original
// post). rawHTML is the serialized content subtree; origin identifies
// the markup element the post was parsed from and defines post
// equality. The author is assigned when the post is registered with a
// Thread.
func NewPost(number int, ts Timestamp, rawHTML string, origin any) (*Post, error) {
	if number < 1 {
		return nil, Errorf(EINVALID, "post number must be positive, got %d", number)
	}
	return &Post{
		number:    number,
		timestamp: ts,
		rawHTML:   rawHTML,
		origin:    origin,
		clean:     make(map[uint64]string),
	}, nil
}

// Number returns the post's number. The first post in a thread is 1.
func (p *Post) Number() int { return p.number }

// Author returns the post's author. Nil until the post is registered
// with a Thread; never nil afterward.
func (p *Post) Author() *Author { return p.author }

// Timestamp returns the post's resolved timestamp. Either component
// may be unresolved; see Timestamp.
func (p *Post) Timestamp() Timestamp { return p.timestamp }

// RawContent returns the unmodified markup of the post's message body.
func (p *Post) RawContent() string { return p.rawHTML }

// CleanContent returns the post's content cleaned according to opts.
// Results are cached per options fingerprint for the post's lifetime,
// since the underlying markup never changes after capture.
func (p *Post) CleanContent(c Cleaner, opts CleanOptions) (string, error) {
	key := opts.Fingerprint()

	p.mu.Lock()
	if text, ok := p.clean[key]; ok {
		p.mu.Unlock()
		return text, nil
	}
	p.mu.Unlock()

	text, err := c.Clean(p.rawHTML, opts)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.clean[key] = text
	p.mu.Unlock()
	return text, nil
}

// Same reports whether both posts were parsed from the same underlying
// markup element. This is identity, not value equality: two Posts
// parsed from the same element are the same even if derived fields
// differ.
func (p *Post) Same(other *Post) bool {
	return other != nil && p.origin != nil && p.origin == other.origin
}

// Less orders posts by number.
func (p *Post) Less(other *Post) bool {
	return p.number < other.number
}
