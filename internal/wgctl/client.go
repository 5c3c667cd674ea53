package wgctl

import (
	"strings"
)

// PeerStatus is one peer row from `wg show <name> dump`. String fields stay
// raw; the GUI formats handshake timestamps and byte counts.
type PeerStatus struct {
	PublicKey       string  `json:"publicKey"`
	Endpoint        *string `json:"endpoint,omitempty"`
	LatestHandshake *string `json:"latestHandshake,omitempty"`
	TransferRx      *string `json:"transferRx,omitempty"`
	TransferTx      *string `json:"transferTx,omitempty"`
}

// Client drives wg and wg-quick through a CommandRunner.
type Client struct {
	runner CommandRunner
}

// NewClient creates a client backed by real process execution.
func NewClient() *Client {
	return &Client{runner: execRunner{}}
}

// NewClientWithRunner creates a client with a custom runner for tests.
func NewClientWithRunner(runner CommandRunner) *Client {
	return &Client{runner: runner}
}

// Status reports runtime peer status for a running interface.
func (c *Client) Status(name string) ([]PeerStatus, error) {
	out, err := c.runner.Output("wg", "show", name, "dump")
	if err != nil {
		return nil, err
	}
	return parseDump(string(out)), nil
}

// parseDump reads the tab-separated `wg show ... dump` output. The first line
// describes the interface itself and is skipped.
func parseDump(out string) []PeerStatus {
	statuses := []PeerStatus{}
	for i, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if i == 0 {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 6 {
			continue
		}
		status := PeerStatus{PublicKey: parts[0]}
		if parts[2] != "" {
			status.Endpoint = &parts[2]
		}
		if parts[4] != "0" {
			status.LatestHandshake = &parts[4]
		}
		status.TransferRx = &parts[5]
		if len(parts) > 6 {
			status.TransferTx = &parts[6]
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// InterfaceUp reports whether the interface is currently running. A failing
// `wg show` simply means it is down, never an error.
func (c *Client) InterfaceUp(name string) bool {
	_, err := c.runner.Output("wg", "show", name)
	return err == nil
}

// Up brings the interface up with wg-quick and returns its output.
func (c *Client) Up(name string) (string, error) {
	out, err := c.runner.Output("sudo", "wg-quick", "up", name)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Down brings the interface down with wg-quick and returns its output.
func (c *Client) Down(name string) (string, error) {
	out, err := c.runner.Output("sudo", "wg-quick", "down", name)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Restart cycles the interface. The down step is allowed to fail, the
// interface may not have been up.
func (c *Client) Restart(name string) (string, error) {
	_, _ = c.Down(name)
	return c.Up(name)
}

// GenerateKeypair produces a fresh private/public key pair via wg genkey and
// wg pubkey.
func (c *Client) GenerateKeypair() (privateKey, publicKey string, err error) {
	out, err := c.runner.Output("wg", "genkey")
	if err != nil {
		return "", "", err
	}
	privateKey = strings.TrimSpace(string(out))

	publicKey, err = c.DerivePublicKey(privateKey)
	if err != nil {
		return "", "", err
	}
	return privateKey, publicKey, nil
}

// DerivePublicKey derives the public key for a private key via wg pubkey.
func (c *Client) DerivePublicKey(privateKey string) (string, error) {
	out, err := c.runner.OutputWithInput(privateKey, "wg", "pubkey")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
