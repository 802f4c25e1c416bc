// Package icon loads the optional window icon. The icon is cosmetic: a
// missing file is not an error and callers never treat failures as fatal.
package icon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Icon describes a loaded icon file.
type Icon struct {
	Path string
	MIME string
	Size int64
}

// Load reads the icon at path. A missing file returns (nil, nil).
func Load(path string) (*Icon, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat icon: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("icon %s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect icon type: %w", err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("icon %s is %s, not an image", path, mt.String())
	}

	return &Icon{Path: path, MIME: mt.String(), Size: info.Size()}, nil
}
