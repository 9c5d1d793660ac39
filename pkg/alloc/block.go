// Package alloc picks a conflict-free fabric subnet and plans host
// addresses inside it. Selection is a deterministic first-fit over an
// explicit ordered candidate list, so repeated runs against the same
// external state always pick the same block.
package alloc

import (
	"net"

	"github.com/apparentlymart/go-cidr/cidr"

	"github.com/frrlab/frrlab/pkg/util"
)

// candidateRange is the private /16 that auto-selection carves /24
// candidates out of.
const candidateRange = "172.31.0.0/16"

// UsedBlockSource reports address blocks currently in use by other
// environments. Implementations are best-effort: on failure they return
// an empty set, never an error, so "no information" degrades to "assume
// nothing is used". The query is re-issued per generation run.
type UsedBlockSource interface {
	UsedBlocks() []*net.IPNet
}

// Static is a fixed UsedBlockSource, used in tests and when embedding
// the engine with a known environment.
type Static []*net.IPNet

// UsedBlocks returns the fixed set.
func (s Static) UsedBlocks() []*net.IPNet { return s }

// Candidates returns the auto-selection candidate sequence: the 254
// /24 blocks of 172.31.0.0/16, third octet ascending from 1 to 254.
// The slice is freshly built on every call; callers may not mutate
// shared state through it.
func Candidates() []*net.IPNet {
	base, _ := util.ParseIPv4CIDR(candidateRange)
	out := make([]*net.IPNet, 0, 254)
	for x := 1; x <= 254; x++ {
		block, err := cidr.Subnet(base, 8, x)
		if err != nil {
			continue // cannot happen for /16 -> /24
		}
		out = append(out, block)
	}
	return out
}

// Overlaps reports whether the two networks share at least one address.
// The check is symmetric: either net containing the other's base address
// means they intersect.
func Overlaps(a, b *net.IPNet) bool {
	return a.Contains(b.IP) || b.Contains(a.IP)
}

// SelectFreeBlock returns the first candidate, in the given order, that
// does not overlap any used block. It returns a *PoolExhaustedError when
// every candidate is taken.
func SelectFreeBlock(candidates, used []*net.IPNet) (*net.IPNet, error) {
	for _, cand := range candidates {
		free := true
		for _, u := range used {
			if Overlaps(cand, u) {
				free = false
				break
			}
		}
		if free {
			util.Debugf("selected free block %s (%d used blocks checked)", cand, len(used))
			return cand, nil
		}
	}
	return nil, &PoolExhaustedError{
		Candidates: len(candidates),
		Used:       len(used),
	}
}
