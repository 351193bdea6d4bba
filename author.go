package threadbook

import "sort"

// Author is a poster identity within one thread: a case-insensitive
// name plus the set of posts attributed to it. Authors are created
// lazily the first time a name is encountered during parsing and are
// append-only afterward.
type Author struct {
	name     string
	thread   *Thread
	byNumber map[int]*Post
}

// Name returns the author's display name as first encountered.
func (a *Author) Name() string { return a.name }

// Thread returns the thread this author's posts belong to.
func (a *Author) Thread() *Thread { return a.thread }

// PostCount returns the number of posts attributed to this author.
func (a *Author) PostCount() int { return len(a.byNumber) }

// IsOriginalPoster reports whether post number 1 belongs to this
// author.
func (a *Author) IsOriginalPoster() bool {
	_, ok := a.byNumber[1]
	return ok
}

// HasPostNumber reports whether a post with the given number is
// attributed to this author.
func (a *Author) HasPostNumber(n int) bool {
	_, ok := a.byNumber[n]
	return ok
}

// ContainsPost reports whether the given post (by markup identity) is
// attributed to this author.
func (a *Author) ContainsPost(p *Post) bool {
	if p == nil {
		return false
	}
	existing, ok := a.byNumber[p.Number()]
	return ok && existing.Same(p)
}

// Posts returns the author's posts sorted by post number.
func (a *Author) Posts() []*Post {
	posts := make([]*Post, 0, len(a.byNumber))
	for _, p := range a.byNumber {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].Less(posts[j]) })
	return posts
}

// PostNumbers returns the numbers of the author's posts in ascending
// order.
func (a *Author) PostNumbers() []int {
	nums := make([]int, 0, len(a.byNumber))
	for n := range a.byNumber {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// addPost attributes a post to this author. Duplicate post numbers are
// a logic error reported as ECONFLICT, never silently overwritten.
func (a *Author) addPost(p *Post) error {
	if a.HasPostNumber(p.Number()) {
		return Errorf(ECONFLICT, "post %d already attributed to author %q", p.Number(), a.name)
	}
	p.author = a
	a.byNumber[p.Number()] = p
	return nil
}
