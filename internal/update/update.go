// Package update provides self-update from GitHub releases.
package update

import (
	"context"
	"errors"
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
)

// GitHub repository the released binaries are published to.
const (
	repoOwner = "chai-cli"
	repoName  = "chai"
)

// ErrDevVersion is returned when trying to update a development build.
var ErrDevVersion = errors.New("cannot update development builds")

// Release describes an available update.
type Release struct {
	Version     string
	ReleaseURL  string
	ReleaseDate string
	Notes       string
	AssetName   string

	release *selfupdate.Release
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:    source,
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	return updater, nil
}

// Check looks for a newer released version. It returns nil when the
// current version is already the latest, and ErrDevVersion for
// unreleased builds.
func Check(ctx context.Context, currentVersion string) (*Release, error) {
	if currentVersion == "dev" {
		return nil, ErrDevVersion
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	release, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found || !release.GreaterThan(currentVersion) {
		return nil, nil
	}

	releaseDate := ""
	if !release.PublishedAt.IsZero() {
		releaseDate = release.PublishedAt.Format("2006-01-02")
	}

	return &Release{
		Version:     release.Version(),
		ReleaseURL:  release.URL,
		ReleaseDate: releaseDate,
		Notes:       release.ReleaseNotes,
		AssetName:   release.AssetName,
		release:     release,
	}, nil
}

// Apply downloads the release and replaces the current binary.
func Apply(ctx context.Context, rel *Release) error {
	if rel == nil || rel.release == nil {
		return errors.New("no release to apply")
	}

	updater, err := newUpdater()
	if err != nil {
		return err
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	if err := updater.UpdateTo(ctx, rel.release, exe); err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}

	return nil
}
