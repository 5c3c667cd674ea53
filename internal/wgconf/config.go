// Package wgconf models WireGuard tunnel configuration files and converts
// them to and from the on-disk .conf format. Parsing is deliberately lenient:
// unknown keys and sections are skipped, malformed numeric fields fall back to
// defaults, and a comment line directly above a [Peer] section becomes that
// peer's display name.
package wgconf

import "errors"

// DefaultListenPort is used when a config omits ListenPort or the value does
// not parse.
const DefaultListenPort uint16 = 51820

var (
	// ErrNoInterface indicates the config had no [Interface] section.
	ErrNoInterface = errors.New("no [Interface] section found")
	// ErrPeerNotFound indicates no peer matched the given public key.
	ErrPeerNotFound = errors.New("peer not found")
)

// Interface describes the local tunnel endpoint.
type Interface struct {
	PrivateKey string  `json:"privateKey"`
	Address    string  `json:"address"`
	ListenPort uint16  `json:"listenPort"`
	DNS        *string `json:"dns,omitempty"`
	PostUp     *string `json:"postUp,omitempty"`
	PostDown   *string `json:"postDown,omitempty"`
}

// Peer describes one remote tunnel endpoint. Name is sourced from the comment
// line directly above the peer's section header, when present.
type Peer struct {
	PublicKey           string  `json:"publicKey"`
	AllowedIPs          string  `json:"allowedIPs"`
	PersistentKeepalive *uint16 `json:"persistentKeepalive,omitempty"`
	Endpoint            *string `json:"endpoint,omitempty"`
	Name                *string `json:"name,omitempty"`
}

// Config is a parsed WireGuard configuration file. Peers keep the order they
// appear in the file; duplicates by public key are representable.
type Config struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Interface Interface `json:"interface"`
	Peers     []Peer    `json:"peers"`
}

// AddPeer appends the peer unconditionally. Duplicate public keys are the
// caller's problem, not an error here.
func (c *Config) AddPeer(peer Peer) {
	c.Peers = append(c.Peers, peer)
}

// UpdatePeer replaces the first peer whose public key matches, preserving its
// position. Later duplicates are left untouched.
func (c *Config) UpdatePeer(publicKey string, updated Peer) error {
	for i := range c.Peers {
		if c.Peers[i].PublicKey == publicKey {
			c.Peers[i] = updated
			return nil
		}
	}
	return ErrPeerNotFound
}

// DeletePeer removes every peer whose public key matches.
func (c *Config) DeletePeer(publicKey string) {
	kept := c.Peers[:0]
	for _, peer := range c.Peers {
		if peer.PublicKey != publicKey {
			kept = append(kept, peer)
		}
	}
	c.Peers = kept
}

// FindPeer returns the first peer with the given public key, or nil.
func (c *Config) FindPeer(publicKey string) *Peer {
	for i := range c.Peers {
		if c.Peers[i].PublicKey == publicKey {
			return &c.Peers[i]
		}
	}
	return nil
}
