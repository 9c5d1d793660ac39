package emit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/frrlab/frrlab/pkg/fabric"
	"github.com/frrlab/frrlab/pkg/util"
)

// daemonsFile enables the daemons every lab node runs. FRR reads this
// before anything else; bgpd off means the rest is moot.
const daemonsFile = `zebra=yes
bgpd=yes
staticd=yes
mgmtd=yes
`

const vtyshFile = `# vtysh.conf
`

// frrConfTemplate renders one node's full FRR configuration. Leading
// spaces are FRR block nesting and must stay exactly as they are.
var frrConfTemplate = template.Must(template.New("frr.conf").Parse(`frr defaults traditional
hostname {{.Name}}
service integrated-vtysh-config
!
router bgp {{.ASN}}
 bgp router-id {{.RouterID}}
{{- range .Peers}}
 neighbor {{.Addr}} remote-as {{.ASN}}
{{- end}}
 !
 address-family ipv4 unicast
{{- range .Peers}}
  neighbor {{.Addr}} activate
{{- end}}
 exit-address-family
!
line vty
!
`))

// nodeConf is the template input for one node.
type nodeConf struct {
	Name     string
	ASN      int
	RouterID string
	Peers    []fabric.Peer
}

// RenderFRRConf renders the frr.conf text for a single node.
func RenderFRRConf(fab *fabric.Fabric, n fabric.Node) (string, error) {
	var buf bytes.Buffer
	err := frrConfTemplate.Execute(&buf, nodeConf{
		Name:     n.Name,
		ASN:      n.ASN,
		RouterID: n.RouterID(),
		Peers:    fab.Peers(n),
	})
	if err != nil {
		return "", fmt.Errorf("rendering frr.conf for %s: %w", n.Name, err)
	}
	return buf.String(), nil
}

// WriteNodeConfigs writes the per-node FRR tree under frrRoot:
// <frrRoot>/<node>/{daemons,vtysh.conf,frr.conf}.
func WriteNodeConfigs(fab *fabric.Fabric, frrRoot string) error {
	for _, n := range fab.Nodes() {
		nodeDir := filepath.Join(frrRoot, n.Name)
		if err := os.MkdirAll(nodeDir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", nodeDir, err)
		}

		conf, err := RenderFRRConf(fab, n)
		if err != nil {
			return err
		}

		files := map[string]string{
			"daemons":    daemonsFile,
			"vtysh.conf": vtyshFile,
			"frr.conf":   conf,
		}
		for name, content := range files {
			path := filepath.Join(nodeDir, name)
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
		util.WithNode(n.Name).Debugf("wrote FRR config (AS%d, router-id %s)", n.ASN, n.RouterID())
	}
	return nil
}
