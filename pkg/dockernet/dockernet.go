// Package dockernet discovers address blocks already claimed by Docker
// networks on the local host. It is the production implementation of
// alloc.UsedBlockSource: strictly best-effort, a daemon that is absent,
// unreachable, or returns garbage yields an empty set rather than an
// error, and individual malformed entries are skipped.
package dockernet

import (
	"net"

	docker "github.com/fsouza/go-dockerclient"

	"github.com/frrlab/frrlab/pkg/util"
)

// networkLister is the slice of the Docker client API the query needs.
type networkLister interface {
	ListNetworks() ([]docker.Network, error)
}

// Source queries the local Docker daemon for subnets in use.
type Source struct {
	client networkLister
}

// NewSource builds a Source from the environment (DOCKER_HOST and
// friends, or the default socket). A client that cannot even be
// constructed leaves the source empty; queries then report no used
// blocks.
func NewSource() *Source {
	client, err := docker.NewClientFromEnv()
	if err != nil {
		util.Debugf("docker client unavailable: %v", err)
		return &Source{}
	}
	return &Source{client: client}
}

// UsedBlocks returns the IPv4 subnets configured on Docker networks.
// Never returns an error: failures degrade to "assume nothing is used".
// Results are fetched fresh on every call, never cached, because the set
// of running networks can change between generation runs.
func (s *Source) UsedBlocks() []*net.IPNet {
	if s == nil || s.client == nil {
		return nil
	}
	networks, err := s.client.ListNetworks()
	if err != nil {
		util.Debugf("docker network list failed: %v", err)
		return nil
	}
	return extractSubnets(networks)
}

// extractSubnets pulls every parsable IPv4 subnet out of the networks'
// IPAM configs. One bad entry must not invalidate the rest.
func extractSubnets(networks []docker.Network) []*net.IPNet {
	var used []*net.IPNet
	for _, nw := range networks {
		for _, cfg := range nw.IPAM.Config {
			if cfg.Subnet == "" {
				continue
			}
			block, err := util.ParseIPv4CIDR(cfg.Subnet)
			if err != nil {
				util.Debugf("skipping subnet %q on docker network %s: %v", cfg.Subnet, nw.Name, err)
				continue
			}
			used = append(used, block)
		}
	}
	util.Debugf("docker reports %d subnets in use", len(used))
	return used
}
