package cli

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwire-dev/jwire/internal/errors"
)

// ManifestScanner discovers .jwire manifest files under the given paths
type ManifestScanner struct{}

// NewManifestScanner creates a manifest scanner
func NewManifestScanner() *ManifestScanner {
	return &ManifestScanner{}
}

// ScanManifests resolves the given paths to manifest files. Paths ending in
// "/..." are walked recursively; directories are scanned one level deep;
// files are taken as-is.
func (s *ManifestScanner) ScanManifests(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var manifests []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			manifests = append(manifests, path)
		}
	}

	for _, path := range paths {
		switch {
		case strings.HasSuffix(path, "/..."):
			base := strings.TrimSuffix(path, "/...")
			if base == "" {
				base = "."
			}
			found, err := s.walk(base)
			if err != nil {
				return nil, err
			}
			for _, m := range found {
				add(m)
			}
		case strings.HasSuffix(path, ".jwire"):
			add(filepath.Clean(path))
		default:
			found, err := s.list(path)
			if err != nil {
				return nil, err
			}
			for _, m := range found {
				add(m)
			}
		}
	}

	sort.Strings(manifests)
	return manifests, nil
}

// walk finds manifests recursively under dir
func (s *ManifestScanner) walk(dir string) ([]string, error) {
	var manifests []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".jwire") {
			manifests = append(manifests, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to scan %s", dir)
	}
	return manifests, nil
}

// list finds manifests directly inside dir, without recursion
func (s *ManifestScanner) list(dir string) ([]string, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.jwire"))
	if err != nil {
		return nil, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to scan %s", dir)
	}
	return entries, nil
}
