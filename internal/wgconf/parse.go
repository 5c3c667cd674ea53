package wgconf

import (
	"bufio"
	"strconv"
	"strings"
)

// Parse reads WireGuard .conf content into a Config. It is a single forward
// pass with no backtracking: section context, the most recent comment, and the
// currently open peer are the only state. Almost nothing is a hard error; the
// only fatal condition is a file with no [Interface] section at all.
func Parse(name, path, content string) (*Config, error) {
	var (
		iface       *Interface
		peers       []Peer
		section     string
		currentPeer *Peer
		lastComment *string
	)

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// A comment directly above a [Peer] header names that peer.
		// Consecutive comments overwrite each other; last one wins.
		if strings.HasPrefix(line, "#") {
			comment := strings.TrimSpace(strings.TrimLeft(line, "#"))
			lastComment = &comment
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if currentPeer != nil {
				peers = append(peers, *currentPeer)
				currentPeer = nil
			}
			section = strings.Trim(line, "[]")
			if section == "Peer" {
				currentPeer = &Peer{Name: lastComment}
			}
			// A [Peer] header consumes the comment; any other header
			// discards it. Either way it never crosses a section.
			lastComment = nil
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch section {
		case "Interface":
			if iface == nil {
				iface = &Interface{ListenPort: DefaultListenPort}
			}
			applyInterfaceField(iface, key, value)
		case "Peer":
			if currentPeer != nil {
				applyPeerField(currentPeer, key, value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if currentPeer != nil {
		peers = append(peers, *currentPeer)
	}

	if iface == nil {
		return nil, ErrNoInterface
	}

	return &Config{
		Name:      name,
		Path:      path,
		Interface: *iface,
		Peers:     peers,
	}, nil
}

func applyInterfaceField(iface *Interface, key, value string) {
	switch key {
	case "PrivateKey":
		iface.PrivateKey = value
	case "Address":
		iface.Address = value
	case "ListenPort":
		// Hand-edited files get the default instead of an error.
		if port, err := strconv.ParseUint(value, 10, 16); err == nil {
			iface.ListenPort = uint16(port)
		} else {
			iface.ListenPort = DefaultListenPort
		}
	case "DNS":
		iface.DNS = &value
	case "PostUp":
		iface.PostUp = &value
	case "PostDown":
		iface.PostDown = &value
	}
}

func applyPeerField(peer *Peer, key, value string) {
	switch key {
	case "PublicKey":
		peer.PublicKey = value
	case "AllowedIPs":
		peer.AllowedIPs = value
	case "PersistentKeepalive":
		if keepalive, err := strconv.ParseUint(value, 10, 16); err == nil {
			v := uint16(keepalive)
			peer.PersistentKeepalive = &v
		}
	case "Endpoint":
		peer.Endpoint = &value
	}
}
