package epub_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadbook/threadbook"
	"github.com/threadbook/threadbook/epub"
)

func testBook() *threadbook.Book {
	return &threadbook.Book{
		ID:       "0c063b82-3a23-45e9-add8-f7c0ef74a195",
		Title:    "The Great Journey",
		ThreadID: 42,
		Authors:  []string{"alice", "bob"},
		Chapters: []threadbook.Chapter{
			{Number: 1, Title: "Posts 1–25", Body: "<p>chapter one</p>"},
			{Number: 2, Title: "Posts 26–50", Body: "<p>chapter two</p>"},
		},
		CreatedAt: time.Date(2014, time.June, 10, 0, 0, 0, 0, time.UTC),
	}
}

func writeTestBook(t *testing.T, book *threadbook.Book) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, epub.NewWriter().WriteBook(context.Background(), book, &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return zr
}

func readEntry(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	f, err := zr.Open(name)
	require.NoError(t, err, "entry %s", name)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(b)
}

func TestWriter_WriteBook(t *testing.T) {
	t.Parallel()

	t.Run("stores the mimetype entry first and uncompressed", func(t *testing.T) {
		t.Parallel()

		zr := writeTestBook(t, testBook())

		require.NotEmpty(t, zr.File)
		first := zr.File[0]
		assert.Equal(t, "mimetype", first.Name)
		assert.Equal(t, zip.Store, first.Method)
		assert.Equal(t, "application/epub+zip", readEntry(t, zr, "mimetype"))
	})

	t.Run("writes the container descriptor", func(t *testing.T) {
		t.Parallel()

		zr := writeTestBook(t, testBook())

		container := readEntry(t, zr, "META-INF/container.xml")
		assert.Contains(t, container, `full-path="OEBPS/content.opf"`)
		assert.Contains(t, container, "urn:oasis:names:tc:opendocument:xmlns:container")
	})

	t.Run("writes the package document", func(t *testing.T) {
		t.Parallel()

		book := testBook()
		zr := writeTestBook(t, book)

		opf := readEntry(t, zr, "OEBPS/content.opf")
		assert.Contains(t, opf, "urn:uuid:"+book.ID)
		assert.Contains(t, opf, "<dc:title>The Great Journey</dc:title>")
		assert.Contains(t, opf, "<dc:creator>alice</dc:creator>")
		assert.Contains(t, opf, "<dc:creator>bob</dc:creator>")
		assert.Contains(t, opf, "<dc:date>2014-06-10</dc:date>")
		assert.Contains(t, opf, `href="chapter-001.xhtml"`)
		assert.Contains(t, opf, `idref="chapter-002"`)
	})

	t.Run("writes the navigation file", func(t *testing.T) {
		t.Parallel()

		zr := writeTestBook(t, testBook())

		ncx := readEntry(t, zr, "OEBPS/toc.ncx")
		assert.Contains(t, ncx, "Posts 1–25")
		assert.Contains(t, ncx, "chapter-002.xhtml")
	})

	t.Run("writes one file per chapter", func(t *testing.T) {
		t.Parallel()

		zr := writeTestBook(t, testBook())

		one := readEntry(t, zr, "OEBPS/chapter-001.xhtml")
		assert.Contains(t, one, "<p>chapter one</p>")
		assert.Contains(t, one, "Posts 1–25")

		two := readEntry(t, zr, "OEBPS/chapter-002.xhtml")
		assert.Contains(t, two, "<p>chapter two</p>")
	})

	t.Run("rejects invalid books", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := epub.NewWriter().WriteBook(context.Background(), &threadbook.Book{}, &buf)
		require.Error(t, err)
		assert.Equal(t, threadbook.EINVALID, threadbook.ErrorCode(err))
	})
}
