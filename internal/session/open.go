package session

import (
	"fmt"
	"io"

	"github.com/maidacontrol/internal/constants"
	"github.com/maidacontrol/internal/domain"
)

// OpenStore opens the store of the given kind. The returned closer releases
// any underlying resources and is never nil.
func OpenStore(kind, path string) (Store, io.Closer, error) {
	switch kind {
	case constants.StoreMemory:
		return NewMemoryStore(), nopCloser{}, nil
	case constants.StoreFile, "":
		store, err := NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, nopCloser{}, nil
	case constants.StoreSQLite:
		store, err := OpenSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, domain.WrapConfigInvalid("session store kind", fmt.Errorf("unknown store %q", kind))
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
