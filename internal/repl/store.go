package repl

import (
	"github.com/chai-cli/chai/internal/chat"
	"github.com/chai-cli/chai/internal/persist"
)

// Store is the persistence collaborator for /save and /load. The loop
// validates filenames and asks for confirmations; the store owns the
// file format and paths.
type Store interface {
	Path(filename string) (string, error)
	Exists(filename string) bool
	Save(sess *chat.Session, filename string) (string, error)
	Load(filename string, sess *chat.Session) error
}

// fileStore is the default Store, backed by the persist package.
type fileStore struct{}

func (fileStore) Path(filename string) (string, error) {
	return persist.Path(filename)
}

func (fileStore) Exists(filename string) bool {
	return persist.Exists(filename)
}

func (fileStore) Save(sess *chat.Session, filename string) (string, error) {
	return persist.Save(sess, filename)
}

func (fileStore) Load(filename string, sess *chat.Session) error {
	return persist.Load(filename, sess)
}
