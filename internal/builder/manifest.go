package builder

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"
)

// ManifestName is the file, relative to the output directory, recording what
// the previous build wrote.
const ManifestName = ".sailsite-manifest"

// ManifestVersion is bumped when page rendering changes in a way that must
// invalidate earlier manifests.
const ManifestVersion = 1

// Manifest records the content hash of every page written by a build.
type Manifest struct {
	Version   int               `msgpack:"version"`
	BuildID   string            `msgpack:"build_id"`
	Generated time.Time         `msgpack:"generated"`
	Pages     map[string]string `msgpack:"pages"`
}

func hashOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ReadManifest reads the manifest in dir. A missing manifest yields an empty
// one and no error.
func ReadManifest(afs afero.Fs, dir string) (*Manifest, error) {
	data, err := afero.ReadFile(afs, filepath.Join(dir, ManifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{Pages: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Version != ManifestVersion {
		return &Manifest{Pages: map[string]string{}}, nil
	}
	if m.Pages == nil {
		m.Pages = map[string]string{}
	}
	return &m, nil
}

// WriteManifest writes m to dir, replacing the previous manifest atomically.
func WriteManifest(afs afero.Fs, dir string, m *Manifest) error {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	target := filepath.Join(dir, ManifestName)
	tmp := target + ".tmp"
	if err := afero.WriteFile(afs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := afs.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}
