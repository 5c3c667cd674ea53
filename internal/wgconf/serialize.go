package wgconf

import (
	"fmt"
	"strings"
)

var commentSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

// Serialize renders the config in canonical .conf form. The field order is a
// contract: re-parsing the output yields an equal Config. Comment placement
// and unknown keys from the original file are not preserved.
func Serialize(config *Config) string {
	var b strings.Builder

	b.WriteString("[Interface]\n")
	fmt.Fprintf(&b, "PrivateKey = %s\n", config.Interface.PrivateKey)
	fmt.Fprintf(&b, "Address = %s\n", config.Interface.Address)
	fmt.Fprintf(&b, "ListenPort = %d\n", config.Interface.ListenPort)

	if config.Interface.DNS != nil {
		fmt.Fprintf(&b, "DNS = %s\n", *config.Interface.DNS)
	}
	if config.Interface.PostUp != nil {
		fmt.Fprintf(&b, "PostUp = %s\n", *config.Interface.PostUp)
	}
	if config.Interface.PostDown != nil {
		fmt.Fprintf(&b, "PostDown = %s\n", *config.Interface.PostDown)
	}

	for _, peer := range config.Peers {
		b.WriteByte('\n')
		if peer.Name != nil {
			// Names arriving through the API may contain newlines;
			// flatten them so they cannot inject config lines.
			fmt.Fprintf(&b, "# %s\n", commentSanitizer.Replace(*peer.Name))
		}
		b.WriteString("[Peer]\n")
		fmt.Fprintf(&b, "PublicKey = %s\n", peer.PublicKey)
		fmt.Fprintf(&b, "AllowedIPs = %s\n", peer.AllowedIPs)
		if peer.PersistentKeepalive != nil {
			fmt.Fprintf(&b, "PersistentKeepalive = %d\n", *peer.PersistentKeepalive)
		}
		if peer.Endpoint != nil {
			fmt.Fprintf(&b, "Endpoint = %s\n", *peer.Endpoint)
		}
	}

	return b.String()
}
