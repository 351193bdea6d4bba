// Package epub packages a threadbook.Book as an EPUB 2 container.
package epub

import (
	"archive/zip"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/beevik/etree"
	"github.com/threadbook/threadbook"
)

// Ensure Writer implements threadbook.BookWriter at compile time.
var _ threadbook.BookWriter = (*Writer)(nil)

// Writer packages books as EPUB files.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteBook writes the book to out as an EPUB container: the stored
// mimetype entry first, then the OCF container descriptor, package
// document, navigation file, and one XHTML file per chapter.
func (w *Writer) WriteBook(ctx context.Context, book *threadbook.Book, out io.Writer) error {
	if err := book.Validate(); err != nil {
		return err
	}

	z := zip.NewWriter(out)

	// The mimetype entry must be first and uncompressed.
	mw, err := z.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err := mw.Write([]byte("application/epub+zip")); err != nil {
		return err
	}

	files := []struct {
		path  string
		build func(*threadbook.Book) ([]byte, error)
	}{
		{"META-INF/container.xml", containerXML},
		{"OEBPS/content.opf", packageXML},
		{"OEBPS/toc.ncx", navigationXML},
	}
	for _, f := range files {
		b, err := f.build(book)
		if err != nil {
			return fmt.Errorf("build %s: %w", f.path, err)
		}
		if err := addFile(z, f.path, b); err != nil {
			return err
		}
	}

	for _, ch := range book.Chapters {
		if err := addFile(z, "OEBPS/"+chapterPath(ch.Number), []byte(chapterXHTML(ch))); err != nil {
			return err
		}
	}

	return z.Close()
}

func addFile(z *zip.Writer, path string, content []byte) error {
	f, err := z.Create(path)
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	return err
}

func chapterPath(number int) string {
	return fmt.Sprintf("chapter-%03d.xhtml", number)
}

func containerXML(_ *threadbook.Book) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")

	rootfile := container.CreateElement("rootfiles").CreateElement("rootfile")
	rootfile.CreateAttr("full-path", "OEBPS/content.opf")
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")

	doc.Indent(2)
	return doc.WriteToBytes()
}

func packageXML(book *threadbook.Book) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("version", "2.0")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("unique-identifier", "book-id")

	meta := pkg.CreateElement("metadata")
	meta.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")

	id := meta.CreateElement("dc:identifier")
	id.CreateAttr("id", "book-id")
	id.SetText("urn:uuid:" + book.ID)
	meta.CreateElement("dc:title").SetText(book.Title)
	meta.CreateElement("dc:language").SetText("en")
	meta.CreateElement("dc:date").SetText(book.CreatedAt.Format("2006-01-02"))
	for _, author := range book.Authors {
		meta.CreateElement("dc:creator").SetText(author)
	}

	manifest := pkg.CreateElement("manifest")
	ncx := manifest.CreateElement("item")
	ncx.CreateAttr("id", "ncx")
	ncx.CreateAttr("href", "toc.ncx")
	ncx.CreateAttr("media-type", "application/x-dtbncx+xml")

	spine := pkg.CreateElement("spine")
	spine.CreateAttr("toc", "ncx")

	for _, ch := range book.Chapters {
		itemID := fmt.Sprintf("chapter-%03d", ch.Number)

		item := manifest.CreateElement("item")
		item.CreateAttr("id", itemID)
		item.CreateAttr("href", chapterPath(ch.Number))
		item.CreateAttr("media-type", "application/xhtml+xml")

		spine.CreateElement("itemref").CreateAttr("idref", itemID)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func navigationXML(book *threadbook.Book) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", "http://www.daisy.org/z3986/2005/ncx/")
	ncx.CreateAttr("version", "2005-1")

	head := ncx.CreateElement("head")
	uid := head.CreateElement("meta")
	uid.CreateAttr("name", "dtb:uid")
	uid.CreateAttr("content", "urn:uuid:"+book.ID)

	ncx.CreateElement("docTitle").CreateElement("text").SetText(book.Title)

	navMap := ncx.CreateElement("navMap")
	for _, ch := range book.Chapters {
		point := navMap.CreateElement("navPoint")
		point.CreateAttr("id", fmt.Sprintf("nav-%03d", ch.Number))
		point.CreateAttr("playOrder", fmt.Sprintf("%d", ch.Number))
		point.CreateElement("navLabel").CreateElement("text").SetText(ch.Title)
		point.CreateElement("content").CreateAttr("src", chapterPath(ch.Number))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// chapterXHTML wraps a chapter's body, which is already an XHTML
// fragment, in a document shell.
func chapterXHTML(ch threadbook.Chapter) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.1//EN" "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>%s</title></head>
<body>
<h2>%s</h2>
%s
</body>
</html>
`, html.EscapeString(ch.Title), html.EscapeString(ch.Title), ch.Body)
}
