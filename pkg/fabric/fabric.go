// Package fabric builds the spine/leaf node set and the BGP peering
// graph of a lab. The topology is fixed-shape: spines form one AS and
// peer with every leaf, each leaf gets its own AS and peers with spine #1
// only. The peering rule is closed-form, so the graph is derived from the
// two role-tagged node lists rather than stored as edges.
package fabric

import (
	"fmt"
	"net"
)

// Role classifies a node in the two-tier topology.
type Role string

const (
	RoleSpine Role = "spine"
	RoleLeaf  Role = "leaf"
)

// Node is one router in the fabric. Nodes are built once per generation
// run and are immutable afterwards.
type Node struct {
	Name string // role + 1-based index, e.g. "spine1"
	Role Role
	Addr net.IP // from the planned host pool
	ASN  int
}

// RouterID returns the node's BGP router ID: a fixed 1.1.1.x identifier
// whose last octet tracks the node address. Unique across the fabric for
// any single /24 allocation.
func (n Node) RouterID() string {
	return RouterID(n.Addr)
}

// Peer is one entry in a node's BGP neighbor list.
type Peer struct {
	Addr net.IP
	ASN  int
}

// Fabric is the generated topology: the chosen subnet plus the two
// role-ordered node lists.
type Fabric struct {
	Subnet *net.IPNet
	Spines []Node
	Leafs  []Node
}

// InvalidTopologyError is returned for degenerate shapes. The peering
// rules presuppose at least one node of each role; with zero spines the
// leaf-peers-spine-1 rule is undefined.
type InvalidTopologyError struct {
	Spines int
	Leafs  int
}

func (e *InvalidTopologyError) Error() string {
	return fmt.Sprintf("topology needs at least 1 spine and 1 leaf, got %d spines and %d leafs", e.Spines, e.Leafs)
}

// Build assembles the fabric from planned addresses. Spine i is named
// "spine"+(i+1) and shares spineAS (route-reflector style, one AS for the
// whole tier); leaf j is named "leaf"+(j+1) with ASN leafASStart+j.
func Build(subnet *net.IPNet, spineAddrs, leafAddrs []net.IP, spineAS, leafASStart int) (*Fabric, error) {
	if len(spineAddrs) < 1 || len(leafAddrs) < 1 {
		return nil, &InvalidTopologyError{Spines: len(spineAddrs), Leafs: len(leafAddrs)}
	}

	fab := &Fabric{
		Subnet: subnet,
		Spines: make([]Node, 0, len(spineAddrs)),
		Leafs:  make([]Node, 0, len(leafAddrs)),
	}
	for i, addr := range spineAddrs {
		fab.Spines = append(fab.Spines, Node{
			Name: fmt.Sprintf("spine%d", i+1),
			Role: RoleSpine,
			Addr: addr,
			ASN:  spineAS,
		})
	}
	for j, addr := range leafAddrs {
		fab.Leafs = append(fab.Leafs, Node{
			Name: fmt.Sprintf("leaf%d", j+1),
			Role: RoleLeaf,
			Addr: addr,
			ASN:  leafASStart + j,
		})
	}
	return fab, nil
}

// Nodes returns all nodes, spines first, in index order.
func (f *Fabric) Nodes() []Node {
	out := make([]Node, 0, len(f.Spines)+len(f.Leafs))
	out = append(out, f.Spines...)
	out = append(out, f.Leafs...)
	return out
}

// Peers derives the BGP neighbor list for a node. Spines peer with every
// leaf; leafs peer with spine #1 only, even when more spines exist.
// Downstream configs depend on these exact lists.
func (f *Fabric) Peers(n Node) []Peer {
	if n.Role == RoleSpine {
		peers := make([]Peer, 0, len(f.Leafs))
		for _, leaf := range f.Leafs {
			peers = append(peers, Peer{Addr: leaf.Addr, ASN: leaf.ASN})
		}
		return peers
	}
	first := f.Spines[0]
	return []Peer{{Addr: first.Addr, ASN: first.ASN}}
}

// RouterID derives the fixed-prefix router ID from an assigned address.
func RouterID(addr net.IP) string {
	v4 := addr.To4()
	return fmt.Sprintf("1.1.1.%d", v4[len(v4)-1])
}
