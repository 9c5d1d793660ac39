package fabric

import (
	"errors"
	"net"
	"reflect"
	"testing"
)

func addrs(ss ...string) []net.IP {
	out := make([]net.IP, 0, len(ss))
	for _, s := range ss {
		out = append(out, net.ParseIP(s).To4())
	}
	return out
}

func testSubnet(t *testing.T) *net.IPNet {
	t.Helper()
	_, subnet, err := net.ParseCIDR("172.31.2.0/24")
	if err != nil {
		t.Fatal(err)
	}
	return subnet
}

func TestBuild(t *testing.T) {
	fab, err := Build(testSubnet(t),
		addrs("172.31.2.11"),
		addrs("172.31.2.12", "172.31.2.13"),
		65000, 65101)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	nodes := fab.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("node count = %d, want 3", len(nodes))
	}

	want := []struct {
		name string
		role Role
		addr string
		asn  int
	}{
		{"spine1", RoleSpine, "172.31.2.11", 65000},
		{"leaf1", RoleLeaf, "172.31.2.12", 65101},
		{"leaf2", RoleLeaf, "172.31.2.13", 65102},
	}
	for i, w := range want {
		n := nodes[i]
		if n.Name != w.name {
			t.Errorf("node %d name = %q, want %q", i, n.Name, w.name)
		}
		if n.Role != w.role {
			t.Errorf("node %d role = %q, want %q", i, n.Role, w.role)
		}
		if n.Addr.String() != w.addr {
			t.Errorf("node %d addr = %s, want %s", i, n.Addr, w.addr)
		}
		if n.ASN != w.asn {
			t.Errorf("node %d ASN = %d, want %d", i, n.ASN, w.asn)
		}
	}
}

func TestBuild_SharedSpineAS(t *testing.T) {
	fab, err := Build(testSubnet(t),
		addrs("172.31.2.11", "172.31.2.12", "172.31.2.13"),
		addrs("172.31.2.14"),
		65000, 65101)
	if err != nil {
		t.Fatal(err)
	}
	for _, spine := range fab.Spines {
		if spine.ASN != 65000 {
			t.Errorf("%s ASN = %d, want shared 65000", spine.Name, spine.ASN)
		}
	}
}

func TestBuild_InvalidTopology(t *testing.T) {
	tests := []struct {
		name   string
		spines []net.IP
		leafs  []net.IP
	}{
		{"zero spines", nil, addrs("172.31.2.12")},
		{"zero leafs", addrs("172.31.2.11"), nil},
		{"zero both", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(testSubnet(t), tt.spines, tt.leafs, 65000, 65101)
			var invalid *InvalidTopologyError
			if !errors.As(err, &invalid) {
				t.Fatalf("error = %v, want *InvalidTopologyError", err)
			}
		})
	}
}

func TestPeers(t *testing.T) {
	fab, err := Build(testSubnet(t),
		addrs("172.31.2.11", "172.31.2.12"),
		addrs("172.31.2.13", "172.31.2.14", "172.31.2.15"),
		65000, 65101)
	if err != nil {
		t.Fatal(err)
	}

	// Every spine peers with every leaf.
	for _, spine := range fab.Spines {
		peers := fab.Peers(spine)
		if len(peers) != len(fab.Leafs) {
			t.Fatalf("%s peer count = %d, want %d", spine.Name, len(peers), len(fab.Leafs))
		}
		for i, leaf := range fab.Leafs {
			if !peers[i].Addr.Equal(leaf.Addr) || peers[i].ASN != leaf.ASN {
				t.Errorf("%s peer %d = %v/%d, want %s/%d",
					spine.Name, i, peers[i].Addr, peers[i].ASN, leaf.Addr, leaf.ASN)
			}
		}
	}

	// Every leaf peers with spine1 only, never the other spines.
	for _, leaf := range fab.Leafs {
		peers := fab.Peers(leaf)
		if len(peers) != 1 {
			t.Fatalf("%s peer count = %d, want 1", leaf.Name, len(peers))
		}
		if !peers[0].Addr.Equal(fab.Spines[0].Addr) || peers[0].ASN != 65000 {
			t.Errorf("%s peer = %v/%d, want %s/65000", leaf.Name, peers[0].Addr, peers[0].ASN, fab.Spines[0].Addr)
		}
	}
}

func TestPeers_DocumentedScenario(t *testing.T) {
	// spines=1 leafs=2, spineAS=65000, leafASStart=65101.
	fab, err := Build(testSubnet(t),
		addrs("172.31.2.11"),
		addrs("172.31.2.12", "172.31.2.13"),
		65000, 65101)
	if err != nil {
		t.Fatal(err)
	}

	spinePeers := fab.Peers(fab.Spines[0])
	wantSpine := []Peer{
		{Addr: net.ParseIP("172.31.2.12").To4(), ASN: 65101},
		{Addr: net.ParseIP("172.31.2.13").To4(), ASN: 65102},
	}
	if !reflect.DeepEqual(spinePeers, wantSpine) {
		t.Errorf("spine1 peers = %v, want %v", spinePeers, wantSpine)
	}

	leafPeers := fab.Peers(fab.Leafs[0])
	wantLeaf := []Peer{{Addr: net.ParseIP("172.31.2.11").To4(), ASN: 65000}}
	if !reflect.DeepEqual(leafPeers, wantLeaf) {
		t.Errorf("leaf1 peers = %v, want %v", leafPeers, wantLeaf)
	}
}

func TestRouterID(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"172.31.2.11", "1.1.1.11"},
		{"172.31.2.254", "1.1.1.254"},
		{"10.0.0.1", "1.1.1.1"},
	}
	for _, tt := range tests {
		if got := RouterID(net.ParseIP(tt.addr)); got != tt.want {
			t.Errorf("RouterID(%s) = %s, want %s", tt.addr, got, tt.want)
		}
	}
}

func TestRouterID_UniquePerFabric(t *testing.T) {
	fab, err := Build(testSubnet(t),
		addrs("172.31.2.11", "172.31.2.12"),
		addrs("172.31.2.13", "172.31.2.14", "172.31.2.15"),
		65000, 65101)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]string)
	for _, n := range fab.Nodes() {
		id := n.RouterID()
		if other, dup := seen[id]; dup {
			t.Errorf("router ID %s assigned to both %s and %s", id, other, n.Name)
		}
		seen[id] = n.Name
	}
}

func TestBuild_Deterministic(t *testing.T) {
	build := func() *Fabric {
		fab, err := Build(testSubnet(t),
			addrs("172.31.2.11"),
			addrs("172.31.2.12", "172.31.2.13"),
			65000, 65101)
		if err != nil {
			t.Fatal(err)
		}
		return fab
	}

	a, b := build(), build()
	if !reflect.DeepEqual(a.Nodes(), b.Nodes()) {
		t.Error("identical inputs produced different node sequences")
	}
}
