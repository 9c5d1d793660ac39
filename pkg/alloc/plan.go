package alloc

import (
	"fmt"
	"net"

	"github.com/apparentlymart/go-cidr/cidr"
)

// HostPool returns the ordered sequence of usable host addresses in
// block: every address except network and broadcast, ascending. The
// ordering is the allocation order, so it must stay stable. Blocks of
// /31 and /32 have no usable hosts under this rule.
func HostPool(block *net.IPNet) []net.IP {
	ones, bits := block.Mask.Size()
	if bits != 32 || ones >= 31 {
		return nil
	}

	first, last := cidr.AddressRange(block)
	pool := make([]net.IP, 0, cidr.AddressCount(block)-2)
	for ip := cidr.Inc(first); !ip.Equal(last); ip = cidr.Inc(ip) {
		pool = append(pool, ip)
	}
	return pool
}

// PlanAddresses slices the host pool of block positionally: spines
// addresses starting at index offset-1, then leafs addresses immediately
// after. The bound check runs before any address is handed out, so a
// request that does not fit fails with *AddressSpaceExhaustedError and
// assigns nothing. Non-overlap of the two slices is structural: one
// flat pool, no reuse.
func PlanAddresses(block *net.IPNet, offset, spines, leafs int) (spineAddrs, leafAddrs []net.IP, err error) {
	if offset < 1 {
		return nil, nil, fmt.Errorf("ip-offset must be >= 1, got %d", offset)
	}
	if spines < 0 || leafs < 0 {
		return nil, nil, fmt.Errorf("node counts must not be negative, got spines=%d leafs=%d", spines, leafs)
	}

	pool := HostPool(block)
	need := offset - 1 + spines + leafs
	if need > len(pool) {
		return nil, nil, &AddressSpaceExhaustedError{
			Block: block.String(),
			Hosts: len(pool),
			Need:  need,
		}
	}

	idx := offset - 1
	spineAddrs = pool[idx : idx+spines]
	leafAddrs = pool[idx+spines : idx+spines+leafs]
	return spineAddrs, leafAddrs, nil
}
