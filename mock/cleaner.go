package mock

import "github.com/threadbook/threadbook"

var _ threadbook.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of threadbook.Cleaner.
type Cleaner struct {
	CleanFn func(rawHTML string, opts threadbook.CleanOptions) (string, error)
}

func (c *Cleaner) Clean(rawHTML string, opts threadbook.CleanOptions) (string, error) {
	return c.CleanFn(rawHTML, opts)
}
