package threadbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadbook/threadbook"
)

// buildThread assembles a thread from (author, number) pairs.
func buildThread(t *testing.T, id int, posts ...struct {
	author string
	number int
}) *threadbook.Thread {
	t.Helper()
	thread := threadbook.NewThread(id)
	for _, p := range posts {
		post, err := threadbook.NewPost(p.number, threadbook.Timestamp{}, "<div>x</div>", new(int))
		require.NoError(t, err)
		require.NoError(t, thread.Append(p.author, post))
	}
	return thread
}

type authoredPost = struct {
	author string
	number int
}

func TestThread_Append(t *testing.T) {
	t.Parallel()

	t.Run("appends posts and assigns authors", func(t *testing.T) {
		t.Parallel()

		thread := buildThread(t, 42,
			authoredPost{"alice", 1},
			authoredPost{"bob", 2},
			authoredPost{"alice", 3},
		)

		assert.Equal(t, 42, thread.ID())
		assert.Equal(t, 3, thread.Len())

		alice, ok := thread.Author("alice")
		require.True(t, ok)
		assert.Equal(t, 2, alice.PostCount())
		assert.Equal(t, []int{1, 3}, alice.PostNumbers())
		assert.True(t, alice.IsOriginalPoster())

		bob, ok := thread.Author("bob")
		require.True(t, ok)
		assert.False(t, bob.IsOriginalPoster())
		assert.Same(t, thread, bob.Thread())
	})

	t.Run("matches author names case-insensitively", func(t *testing.T) {
		t.Parallel()

		thread := buildThread(t, 1,
			authoredPost{"Alice", 1},
			authoredPost{"ALICE", 2},
		)

		assert.Len(t, thread.Authors(), 1)
		alice, ok := thread.Author("alice")
		require.True(t, ok)
		assert.Equal(t, "Alice", alice.Name(), "keeps the first-seen spelling")
		assert.Equal(t, 2, alice.PostCount())
	})

	t.Run("tolerates gaps in post numbers", func(t *testing.T) {
		t.Parallel()

		thread := buildThread(t, 1,
			authoredPost{"alice", 1},
			authoredPost{"bob", 5},
			authoredPost{"alice", 9},
		)

		assert.Equal(t, 3, thread.Len())
	})

	t.Run("rejects a duplicate post number for an author", func(t *testing.T) {
		t.Parallel()

		thread := buildThread(t, 1, authoredPost{"alice", 1})

		dup, err := threadbook.NewPost(1, threadbook.Timestamp{}, "x", new(int))
		require.NoError(t, err)
		err = thread.Append("alice", dup)
		require.Error(t, err)
		assert.Equal(t, threadbook.ECONFLICT, threadbook.ErrorCode(err))
	})

	t.Run("rejects out-of-order post numbers", func(t *testing.T) {
		t.Parallel()

		thread := buildThread(t, 1, authoredPost{"alice", 5})

		late, err := threadbook.NewPost(3, threadbook.Timestamp{}, "x", new(int))
		require.NoError(t, err)
		err = thread.Append("bob", late)
		require.Error(t, err)
		assert.Equal(t, threadbook.EPARSE, threadbook.ErrorCode(err))
	})
}

func TestThread_Post(t *testing.T) {
	t.Parallel()

	thread := buildThread(t, 1,
		authoredPost{"alice", 1},
		authoredPost{"bob", 2},
		authoredPost{"carol", 3},
	)

	t.Run("index one returns the first post", func(t *testing.T) {
		t.Parallel()

		p, err := thread.Post(1)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Number())
	})

	t.Run("index zero also returns the first post", func(t *testing.T) {
		t.Parallel()

		p, err := thread.Post(0)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Number())
	})

	t.Run("negative index counts from the end", func(t *testing.T) {
		t.Parallel()

		p, err := thread.Post(-1)
		require.NoError(t, err)
		assert.Equal(t, 3, p.Number())

		p, err = thread.Post(-3)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Number())
	})

	t.Run("out of range is not found", func(t *testing.T) {
		t.Parallel()

		for _, idx := range []int{4, -4, 100} {
			_, err := thread.Post(idx)
			require.Error(t, err, "index %d", idx)
			assert.Equal(t, threadbook.ENOTFOUND, threadbook.ErrorCode(err))
		}
	})
}

func TestThread_PostsByAuthor(t *testing.T) {
	t.Parallel()

	thread := buildThread(t, 1,
		authoredPost{"alice", 1},
		authoredPost{"bob", 2},
		authoredPost{"alice", 3},
	)

	t.Run("returns the named author's posts in order", func(t *testing.T) {
		t.Parallel()

		posts := thread.PostsByAuthor("ALICE")
		require.Len(t, posts, 2)
		assert.Equal(t, 1, posts[0].Number())
		assert.Equal(t, 3, posts[1].Number())
	})

	t.Run("empty name defaults to the original poster", func(t *testing.T) {
		t.Parallel()

		posts := thread.PostsByAuthor("")
		require.Len(t, posts, 2)
		assert.Equal(t, "alice", posts[0].Author().Name())
	})

	t.Run("unknown author yields no posts", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, thread.PostsByAuthor("nobody"))
	})
}

func TestThread_RankAuthors(t *testing.T) {
	t.Parallel()

	t.Run("orders by descending post count", func(t *testing.T) {
		t.Parallel()

		thread := buildThread(t, 1,
			authoredPost{"alice", 1},
			authoredPost{"bob", 2},
			authoredPost{"bob", 3},
			authoredPost{"carol", 4},
			authoredPost{"bob", 5},
			authoredPost{"carol", 6},
		)

		ranked := thread.RankAuthors()
		require.Len(t, ranked, 3)
		assert.Equal(t, "bob", ranked[0].Name())
		assert.Equal(t, "carol", ranked[1].Name())
		assert.Equal(t, "alice", ranked[2].Name())
	})

	t.Run("breaks ties by first appearance", func(t *testing.T) {
		t.Parallel()

		thread := buildThread(t, 1,
			authoredPost{"alice", 1},
			authoredPost{"bob", 2},
			authoredPost{"alice", 3},
			authoredPost{"bob", 4},
			authoredPost{"carol", 5},
		)

		ranked := thread.RankAuthors()
		require.Len(t, ranked, 3)
		assert.Equal(t, "alice", ranked[0].Name())
		assert.Equal(t, "bob", ranked[1].Name())
		assert.Equal(t, "carol", ranked[2].Name())
	})

	t.Run("excludes names case-insensitively", func(t *testing.T) {
		t.Parallel()

		thread := buildThread(t, 1,
			authoredPost{"alice", 1},
			authoredPost{"bob", 2},
		)

		ranked := thread.RankAuthors("ALICE")
		require.Len(t, ranked, 1)
		assert.Equal(t, "bob", ranked[0].Name())
	})
}

func TestThread_OriginalPoster(t *testing.T) {
	t.Parallel()

	t.Run("returns the author of the first post", func(t *testing.T) {
		t.Parallel()

		thread := buildThread(t, 1,
			authoredPost{"alice", 1},
			authoredPost{"bob", 2},
		)

		op, ok := thread.OriginalPoster()
		require.True(t, ok)
		assert.Equal(t, "alice", op.Name())
	})

	t.Run("empty thread has no original poster", func(t *testing.T) {
		t.Parallel()

		_, ok := threadbook.NewThread(1).OriginalPoster()
		assert.False(t, ok)
	})
}
