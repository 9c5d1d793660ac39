// Package lab runs one generation pass: choose a fabric subnet, plan
// host addresses, and build the spine/leaf topology. Output is
// all-or-nothing; any fatal error aborts before a single node or file
// exists. Each call is independent and queries external state fresh, so
// concurrent embedders get no shared mutable caches.
package lab

import (
	"fmt"
	"net"

	"github.com/frrlab/frrlab/pkg/alloc"
	"github.com/frrlab/frrlab/pkg/fabric"
	"github.com/frrlab/frrlab/pkg/util"
)

// Options describes the requested fabric shape.
type Options struct {
	Subnet      string // explicit CIDR; empty selects a free /24 automatically
	Spines      int
	Leafs       int
	SpineAS     int
	LeafASStart int
	IPOffset    int // 1-based position of the first assigned host address
}

// DefaultOptions returns the stock lab shape: one spine on AS 65000, two
// leafs from AS 65101, addresses from the eleventh host up.
func DefaultOptions() Options {
	return Options{
		Spines:      1,
		Leafs:       2,
		SpineAS:     65000,
		LeafASStart: 65101,
		IPOffset:    11,
	}
}

func (o Options) validate() error {
	if o.Spines < 1 || o.Leafs < 1 {
		return &fabric.InvalidTopologyError{Spines: o.Spines, Leafs: o.Leafs}
	}
	if err := util.ValidateASN(o.SpineAS); err != nil {
		return fmt.Errorf("spine-as: %w", err)
	}
	if err := util.ValidateASN(o.LeafASStart); err != nil {
		return fmt.Errorf("leaf-as-start: %w", err)
	}
	if err := util.ValidateASN(o.LeafASStart + o.Leafs - 1); err != nil {
		return fmt.Errorf("leaf-as-start + leafs: %w", err)
	}
	return nil
}

// Generate produces the fabric for opts. When no explicit subnet is
// given, the used-block source is queried once and the first free /24
// candidate wins; identical inputs against identical external state give
// identical fabrics.
func Generate(opts Options, used alloc.UsedBlockSource) (*fabric.Fabric, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var block *net.IPNet
	if opts.Subnet != "" {
		parsed, err := util.ParseIPv4CIDR(opts.Subnet)
		if err != nil {
			return nil, err
		}
		block = parsed
		util.Debugf("using explicit subnet %s", block)
	} else {
		var usedBlocks []*net.IPNet
		if used != nil {
			usedBlocks = used.UsedBlocks()
		}
		selected, err := alloc.SelectFreeBlock(alloc.Candidates(), usedBlocks)
		if err != nil {
			return nil, err
		}
		block = selected
		util.Infof("auto-selected free subnet %s", block)
	}

	spineAddrs, leafAddrs, err := alloc.PlanAddresses(block, opts.IPOffset, opts.Spines, opts.Leafs)
	if err != nil {
		return nil, err
	}

	return fabric.Build(block, spineAddrs, leafAddrs, opts.SpineAS, opts.LeafASStart)
}
