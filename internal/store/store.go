// Package store persists WireGuard configs in a single directory of .conf
// files. There is no in-memory cache: every operation re-reads the file, so
// edits made by other tools are picked up immediately. Concurrent writers to
// the same file race and the last one wins.
package store

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wiredeck/internal/wgconf"
)

// ErrNotFound indicates the named config file does not exist.
var ErrNotFound = errors.New("config not found")

// DefaultDir returns the conventional WireGuard config directory: Homebrew on
// Apple Silicon, then Homebrew on Intel, then /etc/wireguard. The first
// existing path wins; the last is returned as a fallback either way.
func DefaultDir() string {
	candidates := []string{
		"/opt/homebrew/etc/wireguard",
		"/usr/local/etc/wireguard",
		"/etc/wireguard",
	}
	for _, dir := range candidates {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	return candidates[len(candidates)-1]
}

// Store reads and writes configs under a fixed directory. The directory is
// resolved by the caller (flag, settings, or DefaultDir).
type Store struct {
	dir string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory this store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path for a config name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".conf")
}

// List returns the names of all .conf files, sorted. A missing directory is
// an empty listing, not an error.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".conf") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".conf"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and parses the named config.
func (s *Store) Load(name string) (*wgconf.Config, error) {
	path := s.Path(name)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	return wgconf.Parse(name, path, string(content))
}

// Save serializes the config to its path. The previous file contents are
// copied to a sibling .bak first; a failed backup is logged but never blocks
// the save, and a missing source file (first save) skips the backup entirely.
func (s *Store) Save(config *wgconf.Config) error {
	path := config.Path
	if path == "" {
		path = s.Path(config.Name)
		config.Path = path
	}

	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+".bak"); err != nil {
			log.Printf("warning: backup of %s failed: %v", path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	content := wgconf.Serialize(config)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// AddPeer loads the named config fresh, appends the peer, and saves.
func (s *Store) AddPeer(name string, peer wgconf.Peer) (*wgconf.Config, error) {
	config, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	config.AddPeer(peer)
	if err := s.Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

// UpdatePeer loads the named config fresh, replaces the first peer matching
// publicKey, and saves. Nothing is written when the peer is missing.
func (s *Store) UpdatePeer(name, publicKey string, updated wgconf.Peer) (*wgconf.Config, error) {
	config, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	if err := config.UpdatePeer(publicKey, updated); err != nil {
		return nil, err
	}
	if err := s.Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

// DeletePeer loads the named config fresh, removes every peer matching
// publicKey, and saves.
func (s *Store) DeletePeer(name, publicKey string) (*wgconf.Config, error) {
	config, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	config.DeletePeer(publicKey)
	if err := s.Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
