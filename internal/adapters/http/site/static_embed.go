package site

import (
	"embed"
	"fmt"
)

//go:embed static/index.html
var staticFS embed.FS

// Page returns the embedded page shell.
func Page() ([]byte, error) {
	b, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServe, err)
	}
	return b, nil
}
