package resources

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"breathflow/internal/audio"
)

const ambienceDir = "ambience"

// AmbientTracks discovers the user's ambient recordings under
// <UserConfigDir>/<appName>/ambience. A missing directory yields an empty
// playlist rather than an error; ambience is optional.
func AmbientTracks(appName string) ([]audio.Track, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return scanTracks(filepath.Join(configDir, appName, ambienceDir))
}

func scanTracks(dir string) ([]audio.Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ambience dir: %w", err)
	}

	var tracks []audio.Track
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		tracks = append(tracks, audio.Track{
			Name: trackName(entry.Name()),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].Name < tracks[j].Name
	})
	return tracks, nil
}

func trackName(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.TrimSpace(name)
}
