// Package persist stores chat histories as JSON files under the chai
// config directory. Filenames are chosen by the user; validation of
// the name happens at the command layer.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/chai-cli/chai/internal/chat"
	"github.com/chai-cli/chai/internal/config"
)

// ErrChatNotFound is returned when loading a file that does not exist.
var ErrChatNotFound = errors.New("chat not found")

// SavedChat is the on-disk representation of a chat history.
type SavedChat struct {
	ID       string         `json:"id"`
	Model    string         `json:"model,omitempty"`
	SavedAt  time.Time      `json:"saved_at"`
	Messages []chat.Message `json:"messages"`
}

// GetSaveDir returns the directory where saved chats are stored.
// This is a variable to allow mocking in tests.
var GetSaveDir = func() (string, error) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "chats"), nil
}

// Path resolves a user-supplied filename to its full save path.
func Path(filename string) (string, error) {
	saveDir, err := GetSaveDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(saveDir, filename), nil
}

// Exists reports whether a saved chat with the given filename exists.
func Exists(filename string) bool {
	path, err := Path(filename)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes the session's history to the named file and returns the
// full path written.
func Save(sess *chat.Session, filename string) (string, error) {
	saveDir, err := GetSaveDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(saveDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create save directory: %w", err)
	}

	saved := SavedChat{
		ID:       uuid.New().String(),
		Model:    sess.Model(),
		SavedAt:  time.Now(),
		Messages: sess.Messages(),
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat: %w", err)
	}

	path := filepath.Join(saveDir, filename)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write chat file: %w", err)
	}

	return path, nil
}

// Load reads the named file and replaces the session's history with its
// messages. The session's model identity is left untouched.
func Load(filename string, sess *chat.Session) error {
	path, err := Path(filename)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrChatNotFound, filename)
		}
		return fmt.Errorf("failed to read chat file: %w", err)
	}

	var saved SavedChat
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to parse chat file: %w", err)
	}

	sess.Replace(saved.Messages)
	return nil
}
