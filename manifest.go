package launchkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Library references one library artifact on disk, relative to the
// libraries root.
type Library struct {
	ArtifactPath string `json:"path"`
}

// VersionManifest describes one installed game version. launchkit assumes
// every referenced file already exists on disk — it never fetches missing
// files itself.
type VersionManifest struct {
	// ID is the version identifier, e.g. "1.20.4".
	ID string `json:"id"`

	// AssetsIndexID names the assets index for this version.
	AssetsIndexID string `json:"assetIndex"`

	// MainClass is the entry-point class name.
	MainClass string `json:"mainClass"`

	// JavaVersion is the minimum runtime major version this version
	// requires. Zero means no requirement beyond the global floor.
	JavaVersion int `json:"javaVersion,omitempty"`

	// Libraries lists classpath artifacts in manifest order.
	Libraries []Library `json:"libraries"`
}

// GameDirs is the on-disk layout of a game installation root.
type GameDirs struct {
	// Root is the game directory: working directory of the launched
	// process and parent of versions/, libraries/, and assets/.
	Root string
}

func (d GameDirs) VersionDir(id string) string {
	return filepath.Join(d.Root, "versions", id)
}

func (d GameDirs) ManifestPath(id string) string {
	return filepath.Join(d.VersionDir(id), id+".json")
}

func (d GameDirs) ClientJar(id string) string {
	return filepath.Join(d.VersionDir(id), id+".jar")
}

// NativesDir is the per-version directory that native libraries are
// unpacked into. It may not exist yet; args.EnsureNatives creates it.
func (d GameDirs) NativesDir(id string) string {
	return filepath.Join(d.VersionDir(id), "natives")
}

func (d GameDirs) Libraries() string {
	return filepath.Join(d.Root, "libraries")
}

func (d GameDirs) Assets() string {
	return filepath.Join(d.Root, "assets")
}

// LoadManifest reads and decodes the manifest for the given version ID.
// A missing version directory or manifest file is a *PreconditionError
// with ReasonMissingVersionFiles; a present but malformed manifest is a
// plain decoding error.
func LoadManifest(dirs GameDirs, id string) (VersionManifest, error) {
	if id == "" {
		return VersionManifest{}, fmt.Errorf("manifest: empty version id")
	}
	path := dirs.ManifestPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		return VersionManifest{}, &PreconditionError{
			Reason: ReasonMissingVersionFiles,
			Detail: fmt.Sprintf("manifest %s", path),
			Err:    err,
		}
	}
	var m VersionManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return VersionManifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	if m.ID == "" {
		m.ID = id
	}
	return m, nil
}
