package wgconf

import (
	"reflect"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func u16Ptr(v uint16) *uint16 { return &v }

func TestSerialize_FieldOrder(t *testing.T) {
	cfg := &Config{
		Name: "wg0",
		Interface: Interface{
			PrivateKey: "priv",
			Address:    "10.0.0.1/24",
			ListenPort: 51820,
			DNS:        strPtr("1.1.1.1"),
			PostUp:     strPtr("echo up"),
			PostDown:   strPtr("echo down"),
		},
		Peers: []Peer{
			{
				PublicKey:           "pub1",
				AllowedIPs:          "10.0.0.2/32",
				PersistentKeepalive: u16Ptr(25),
				Endpoint:            strPtr("host:51820"),
				Name:                strPtr("laptop"),
			},
			{
				PublicKey:  "pub2",
				AllowedIPs: "10.0.0.3/32",
			},
		},
	}

	want := `[Interface]
PrivateKey = priv
Address = 10.0.0.1/24
ListenPort = 51820
DNS = 1.1.1.1
PostUp = echo up
PostDown = echo down

# laptop
[Peer]
PublicKey = pub1
AllowedIPs = 10.0.0.2/32
PersistentKeepalive = 25
Endpoint = host:51820

[Peer]
PublicKey = pub2
AllowedIPs = 10.0.0.3/32
`
	if got := Serialize(cfg); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerialize_EmptyRequiredFieldsStillEmitted(t *testing.T) {
	cfg := &Config{Interface: Interface{}}
	out := Serialize(cfg)
	for _, line := range []string{"PrivateKey = \n", "Address = \n", "ListenPort = 0\n"} {
		if !strings.Contains(out, line) {
			t.Fatalf("expected %q in output:\n%s", line, out)
		}
	}
}

func TestSerialize_PeerNameCannotInjectLines(t *testing.T) {
	cfg := &Config{
		Interface: Interface{PrivateKey: "k"},
		Peers: []Peer{
			{
				PublicKey:  "pub1",
				AllowedIPs: "10.0.0.2/32",
				Name:       strPtr("evil\n[Peer]\nPublicKey = forged"),
			},
		},
	}

	out := Serialize(cfg)
	if strings.Contains(out, "\nPublicKey = forged") {
		t.Fatalf("newline in name injected config lines:\n%s", out)
	}

	reparsed, err := Parse("wg0", "", out)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if len(reparsed.Peers) != 1 {
		t.Fatalf("expected 1 peer after reparse, got %d", len(reparsed.Peers))
	}
	if reparsed.Peers[0].PublicKey != "pub1" {
		t.Fatalf("unexpected peer: %#v", reparsed.Peers[0])
	}
	if reparsed.Peers[0].Name == nil || *reparsed.Peers[0].Name != "evil [Peer] PublicKey = forged" {
		t.Fatalf("expected flattened name, got %v", reparsed.Peers[0].Name)
	}
}

func TestRoundTrip(t *testing.T) {
	raw := `# ignored header
[Interface]
PrivateKey = QLowSWJxH9WJ4Az7MwZXN49wdMUt8KAe9yU8xgoJGGs=
Address = 10.0.0.1/24, fd00::1/64
ListenPort = 443
DNS = 1.1.1.1, 8.8.8.8
PostUp = iptables -A FORWARD -i %i -j ACCEPT
PostDown = iptables -D FORWARD -i %i -j ACCEPT
UnknownKey = dropped on purpose

# phone
[Peer]
PublicKey = p1
AllowedIPs = 10.0.0.2/32
PersistentKeepalive = 25
Endpoint = [2001:db8::1]:51820

[Peer]
PublicKey = p2
AllowedIPs = 0.0.0.0/0

# router
[Peer]
PublicKey = p3
AllowedIPs = 10.0.0.4/32
`
	first, err := Parse("wg0", "/tmp/wg0.conf", raw)
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	second, err := Parse("wg0", "/tmp/wg0.conf", Serialize(first))
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip diverged:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestRoundTrip_MinimalConfig(t *testing.T) {
	first, err := Parse("wg0", "", "[Interface]\nPrivateKey = k\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	second, err := Parse("wg0", "", Serialize(first))
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip diverged: %#v vs %#v", first, second)
	}
}

func TestUpdatePeer_FirstMatchOnly(t *testing.T) {
	cfg := &Config{Peers: []Peer{
		{PublicKey: "1", AllowedIPs: "a"},
		{PublicKey: "2", AllowedIPs: "b"},
		{PublicKey: "1", AllowedIPs: "c"},
	}}
	if err := cfg.UpdatePeer("1", Peer{PublicKey: "1", AllowedIPs: "x"}); err != nil {
		t.Fatalf("UpdatePeer returned error: %v", err)
	}
	got := []string{cfg.Peers[0].AllowedIPs, cfg.Peers[1].AllowedIPs, cfg.Peers[2].AllowedIPs}
	if got[0] != "x" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected only the first duplicate replaced, got %v", got)
	}
}

func TestUpdatePeer_NotFound(t *testing.T) {
	cfg := &Config{Peers: []Peer{{PublicKey: "1"}}}
	if err := cfg.UpdatePeer("missing", Peer{}); err != ErrPeerNotFound {
		t.Fatalf("expected ErrPeerNotFound, got %v", err)
	}
}

func TestDeletePeer_RemovesAllMatches(t *testing.T) {
	cfg := &Config{Peers: []Peer{
		{PublicKey: "1", AllowedIPs: "a"},
		{PublicKey: "2", AllowedIPs: "b"},
		{PublicKey: "1", AllowedIPs: "c"},
	}}
	cfg.DeletePeer("1")
	if len(cfg.Peers) != 1 || cfg.Peers[0].PublicKey != "2" {
		t.Fatalf("expected every duplicate removed, got %#v", cfg.Peers)
	}
}

func TestAddPeer_AllowsDuplicates(t *testing.T) {
	cfg := &Config{}
	cfg.AddPeer(Peer{PublicKey: "1"})
	cfg.AddPeer(Peer{PublicKey: "1"})
	if len(cfg.Peers) != 2 {
		t.Fatalf("expected 2 peers, got %d", len(cfg.Peers))
	}
}
