package emit

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/frrlab/frrlab/pkg/fabric"
)

// frrImage is the routing daemon image every node runs.
const frrImage = "quay.io/frrouting/frr:9.1.0"

// nodeEntrypoint prepares the FRR runtime directory and keeps the
// container alive after docker-start backgrounds the daemons.
var nodeEntrypoint = []string{
	"/bin/sh",
	"-lc",
	"mkdir -p /var/run/frr\n" +
		"chown -R frr:frr /etc/frr /var/run/frr || true\n" +
		"/usr/lib/frr/docker-start\n" +
		"tail -f /dev/null\n",
}

// Compose manifest structure. Values reference .env bindings
// (${LAB_NAME}, ${FRR_DIR}, ${<NODE>_IP}, ${FABRIC_SUBNET}) so one
// manifest works for any lab instance.
type composeFile struct {
	Services map[string]composeService `yaml:"services"`
	Networks map[string]composeNetwork `yaml:"networks"`
}

type composeService struct {
	Image         string                    `yaml:"image"`
	ContainerName string                    `yaml:"container_name"`
	Hostname      string                    `yaml:"hostname"`
	Privileged    bool                      `yaml:"privileged"`
	Entrypoint    []string                  `yaml:"entrypoint"`
	Volumes       []string                  `yaml:"volumes"`
	Networks      map[string]serviceNetwork `yaml:"networks"`
}

type serviceNetwork struct {
	IPv4Address string `yaml:"ipv4_address"`
}

type composeNetwork struct {
	Driver string      `yaml:"driver"`
	IPAM   composeIPAM `yaml:"ipam"`
}

type composeIPAM struct {
	Config []ipamConfig `yaml:"config"`
}

type ipamConfig struct {
	Subnet string `yaml:"subnet"`
}

// BuildCompose assembles the manifest structure for a fabric: one
// service per node on the shared "fabric" bridge network.
func BuildCompose(fab *fabric.Fabric) *composeFile {
	cf := &composeFile{
		Services: make(map[string]composeService, len(fab.Spines)+len(fab.Leafs)),
		Networks: map[string]composeNetwork{
			"fabric": {
				Driver: "bridge",
				IPAM: composeIPAM{
					Config: []ipamConfig{{Subnet: "${FABRIC_SUBNET}"}},
				},
			},
		},
	}

	for _, n := range fab.Nodes() {
		cf.Services[n.Name] = composeService{
			Image:         frrImage,
			ContainerName: "${LAB_NAME}-" + n.Name,
			Hostname:      n.Name,
			Privileged:    true,
			Entrypoint:    nodeEntrypoint,
			Volumes:       []string{"${FRR_DIR}/" + n.Name + ":/etc/frr"},
			Networks: map[string]serviceNetwork{
				"fabric": {IPv4Address: "${" + EnvKey(n.Name) + "}"},
			},
		}
	}
	return cf
}

// WriteCompose marshals the manifest for fab to path.
func WriteCompose(fab *fabric.Fabric, path string) error {
	data, err := yaml.Marshal(BuildCompose(fab))
	if err != nil {
		return fmt.Errorf("marshalling compose YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// EnvKey is the .env variable name carrying a node's address:
// spine1 -> SPINE1_IP.
func EnvKey(nodeName string) string {
	return strings.ToUpper(nodeName) + "_IP"
}
