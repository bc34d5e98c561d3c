// Package content holds the site's message documents, one tree per locale
// laid out as <locale>/<namespace path>.json.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

//go:embed messages
var files embed.FS

// Embedded returns the documents compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(files, "messages")
	if err != nil {
		panic(fmt.Sprintf("content: embedded messages: %v", err))
	}
	return sub
}

// Open returns the documents under dir, or the embedded ones when dir is empty.
func Open(dir string) (fs.FS, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Embedded(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("messages dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("messages dir %q is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
