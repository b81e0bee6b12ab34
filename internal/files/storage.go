package files

import (
	"io"
	"os"
)

// Storage is the interface the product service uploads image assets
// through. Save must reject contents larger than the store's limit.
type Storage interface {
	Save(path string, contents io.Reader) error
	Get(path string) (*os.File, error)
}
