package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Directory reads "<endpoint>.csv" files from a local directory, for example
// tabs downloaded from the spreadsheet by hand.
type Directory struct {
	dir string
}

func NewDirectory(dir string) *Directory {
	return &Directory{dir: dir}
}

func (d *Directory) FetchCategoryText(ctx context.Context, endpoint string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if endpoint == "" || filepath.Base(endpoint) != endpoint {
		return "", fmt.Errorf("invalid endpoint file name %q", endpoint)
	}

	path := filepath.Join(d.dir, endpoint+".csv")
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	// UTF-8 by default; a UTF-16 BOM switches the decoder.
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	content, err := io.ReadAll(transform.NewReader(file, decoder))
	if err != nil {
		return "", fmt.Errorf("read csv file %s: %w", path, err)
	}
	return string(content), nil
}
