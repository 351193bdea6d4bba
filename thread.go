package threadbook

import (
	"sort"
	"strings"
)

// Thread is one forum topic: an ordered sequence of posts plus derived
// author indices. Threads are assembled once by a parser and are
// read-only afterward; a built Thread is safe to share across any
// number of concurrent readers.
type Thread struct {
	id    int
	title string

	posts []*Post

	// authors maps the lowercased author name to its ledger entry;
	// order preserves first appearance for stable ranking.
	authors map[string]*Author
	order   []*Author
}

// NewThread creates an empty thread with the given external id.
func NewThread(id int) *Thread {
	return &Thread{
		id:      id,
		authors: make(map[string]*Author),
	}
}

// ID returns the thread's external identifier.
func (t *Thread) ID() int { return t.id }

// Title returns the thread title, when one was extracted. May be
// empty.
func (t *Thread) Title() string { return t.title }

// SetTitle records the thread title during parsing.
func (t *Thread) SetTitle(title string) { t.title = title }

// Len returns the number of posts in the thread.
func (t *Thread) Len() int { return len(t.posts) }

// Posts returns the thread's posts in source order.
func (t *Thread) Posts() []*Post {
	posts := make([]*Post, len(t.posts))
	copy(posts, t.posts)
	return posts
}

// Author returns the ledger entry for the case-insensitively matched
// name, if one exists.
func (t *Thread) Author(name string) (*Author, bool) {
	a, ok := t.authors[foldName(name)]
	return a, ok
}

// GetOrCreateAuthor returns the existing Author for the
// case-insensitively matched name, creating and registering one if
// needed. Idempotent.
func (t *Thread) GetOrCreateAuthor(name string) *Author {
	key := foldName(name)
	if a, ok := t.authors[key]; ok {
		return a
	}
	a := &Author{
		name:     name,
		thread:   t,
		byNumber: make(map[int]*Post),
	}
	t.authors[key] = a
	t.order = append(t.order, a)
	return a
}

// Authors returns the thread's authors in first-appearance order.
func (t *Thread) Authors() []*Author {
	authors := make([]*Author, len(t.order))
	copy(authors, t.order)
	return authors
}

// Append registers a post under the given author name, appending it to
// the thread's post sequence. Post numbers must strictly increase in
// source order (gaps are tolerated); a duplicate number for the same
// author is ECONFLICT, any other ordering violation is EPARSE.
func (t *Thread) Append(authorName string, p *Post) error {
	a := t.GetOrCreateAuthor(authorName)
	if a.HasPostNumber(p.Number()) {
		return Errorf(ECONFLICT, "post %d already attributed to author %q", p.Number(), a.Name())
	}
	if n := len(t.posts); n > 0 && p.Number() <= t.posts[n-1].Number() {
		return Errorf(EPARSE, "post number %d out of order after %d", p.Number(), t.posts[n-1].Number())
	}
	if err := a.addPost(p); err != nil {
		return err
	}
	t.posts = append(t.posts, p)
	return nil
}

// OriginalPoster returns the author of post 1, if the thread has any
// posts.
func (t *Thread) OriginalPoster() (*Author, bool) {
	if len(t.posts) == 0 {
		return nil, false
	}
	return t.posts[0].Author(), true
}

// Post looks up a post by index or negative offset: 0 and 1 both
// return the first post, positive n the nth post, negative n the
// nth-from-last (-1 is the last). Out-of-range access is an ENOTFOUND
// error.
func (t *Thread) Post(index int) (*Post, error) {
	n := len(t.posts)
	switch {
	case index == 0:
		index = 1
	case index < 0:
		index = n + index + 1
	}
	if index < 1 || index > n {
		return nil, Errorf(ENOTFOUND, "post index out of range for thread with %d posts", n)
	}
	return t.posts[index-1], nil
}

// PostsByAuthor returns the posts made by the named author, sorted by
// post number. An empty name defaults to the thread's original poster.
// Unknown authors yield an empty sequence, never an error.
func (t *Thread) PostsByAuthor(name string) []*Post {
	if name == "" {
		op, ok := t.OriginalPoster()
		if !ok {
			return nil
		}
		name = op.Name()
	}
	a, ok := t.Author(name)
	if !ok {
		return nil
	}
	return a.Posts()
}

// RankAuthors returns authors ordered by descending post count, ties
// broken by first-appearance order, with any excluded names (matched
// case-insensitively) filtered out.
func (t *Thread) RankAuthors(excluding ...string) []*Author {
	excluded := make(map[string]bool, len(excluding))
	for _, name := range excluding {
		excluded[foldName(name)] = true
	}

	var ranked []*Author
	for _, a := range t.order {
		if !excluded[foldName(a.Name())] {
			ranked = append(ranked, a)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PostCount() > ranked[j].PostCount()
	})
	return ranked
}

func foldName(name string) string {
	return strings.ToLower(name)
}
