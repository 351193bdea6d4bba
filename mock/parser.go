package mock

import "github.com/threadbook/threadbook"

var _ threadbook.ThreadParser = (*ThreadParser)(nil)

// ThreadParser is a mock implementation of threadbook.ThreadParser.
type ThreadParser struct {
	ParseThreadFn func(rawHTML string, threadID int) (*threadbook.Thread, error)
}

func (p *ThreadParser) ParseThread(rawHTML string, threadID int) (*threadbook.Thread, error) {
	return p.ParseThreadFn(rawHTML, threadID)
}
