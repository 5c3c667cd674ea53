// Package ipalloc suggests a free tunnel address for a new peer: the
// interface subnet minus addresses already claimed by the interface itself or
// by peer AllowedIPs. The config model keeps address fields opaque, so
// parsing here is best effort; anything unreadable is skipped.
package ipalloc

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"go4.org/netipx"

	"wiredeck/internal/wgconf"
)

var (
	// ErrNoSubnet indicates the interface Address held no parseable CIDR.
	ErrNoSubnet = errors.New("no usable subnet in interface address")
	// ErrExhausted indicates every address in the subnet is taken.
	ErrExhausted = errors.New("no free address left in subnet")
)

// Suggest returns the lowest free host address in the interface subnet as a
// single-host CIDR, for use as a new peer's AllowedIPs.
func Suggest(config *wgconf.Config) (string, error) {
	var builder netipx.IPSetBuilder
	var subnets []netip.Prefix

	for _, entry := range splitList(config.Interface.Address) {
		prefix, addr, ok := parseEntry(entry)
		if !ok {
			continue
		}
		subnet := prefix.Masked()
		builder.AddPrefix(subnet)
		subnets = append(subnets, subnet)
		// The interface's own address and the network base are taken.
		builder.Remove(addr)
		builder.Remove(subnet.Addr())
	}
	if len(subnets) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoSubnet, config.Interface.Address)
	}

	for _, peer := range config.Peers {
		for _, entry := range splitList(peer.AllowedIPs) {
			prefix, addr, ok := parseEntry(entry)
			if !ok {
				continue
			}
			// Carve out the whole claimed block when it sits inside a
			// tunnel subnet. Routing-wide entries like 0.0.0.0/0 only
			// surrender their base address, otherwise a single
			// full-tunnel peer would exhaust the subnet.
			if insideAny(prefix, subnets) {
				builder.RemovePrefix(prefix.Masked())
			} else {
				builder.Remove(addr)
			}
		}
	}

	set, err := builder.IPSet()
	if err != nil {
		return "", err
	}
	ranges := set.Ranges()
	if len(ranges) == 0 {
		return "", ErrExhausted
	}
	free := ranges[0].From()
	return netip.PrefixFrom(free, free.BitLen()).String(), nil
}

func insideAny(prefix netip.Prefix, subnets []netip.Prefix) bool {
	for _, subnet := range subnets {
		if subnet.Contains(prefix.Addr()) && prefix.Bits() >= subnet.Bits() {
			return true
		}
	}
	return false
}

// parseEntry reads "addr" or "addr/len" into its prefix and bare address.
func parseEntry(entry string) (netip.Prefix, netip.Addr, bool) {
	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return netip.Prefix{}, netip.Addr{}, false
		}
		return prefix, prefix.Addr(), true
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, netip.Addr{}, false
	}
	return netip.PrefixFrom(addr, addr.BitLen()), addr, true
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		items = append(items, trimmed)
	}
	return items
}
