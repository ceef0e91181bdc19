package ui

import (
	_ "embed"
	"os"

	"github.com/mylxsw/asteria/log"
)

//go:embed index.html
var embedded []byte

// Page is the chat page served at the root path
type Page struct {
	content string
}

// New loads the page at path, falling back to the embedded page when path is
// empty or does not exist
func New(path string) (*Page, error) {
	if path == "" {
		return &Page{content: string(embedded)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warningf("ui page %s not found, using the built-in page", path)
			return &Page{content: string(embedded)}, nil
		}

		return nil, err
	}

	return &Page{content: string(data)}, nil
}

// HTML returns the whole document, it is always sent in full
func (p *Page) HTML() string {
	return p.content
}
