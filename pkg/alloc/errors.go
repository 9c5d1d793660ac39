package alloc

import "fmt"

// PoolExhaustedError is returned when every candidate subnet overlaps
// address space that is already in use. This is fatal: generation must
// stop before any node or file is produced.
type PoolExhaustedError struct {
	Candidates int // number of candidates scanned
	Used       int // number of used blocks they were checked against
}

func (e *PoolExhaustedError) Error() string {
	return fmt.Sprintf("no free subnet: all %d candidates overlap the %d address blocks in use (try --subnet)",
		e.Candidates, e.Used)
}

// AddressSpaceExhaustedError is returned when the requested node counts
// plus offset do not fit in the chosen block. Detected before any address
// is assigned.
type AddressSpaceExhaustedError struct {
	Block string // chosen block in CIDR form
	Hosts int    // usable host addresses in the block
	Need  int    // offset - 1 + spines + leafs
}

func (e *AddressSpaceExhaustedError) Error() string {
	return fmt.Sprintf("subnet %s has %d usable host addresses, need %d (ip-offset + spines + leafs)",
		e.Block, e.Hosts, e.Need)
}
