package mock

import "github.com/threadbook/threadbook"

var _ threadbook.Converter = (*Converter)(nil)

// Converter is a mock implementation of threadbook.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
