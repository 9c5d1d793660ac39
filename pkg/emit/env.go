package emit

import (
	"fmt"
	"os"
	"strings"

	"github.com/frrlab/frrlab/pkg/fabric"
)

// RenderEnv builds the .env contents binding the compose manifest to one
// concrete lab: project naming, the FRR config root, the fabric subnet,
// and one address per node. Node order follows fab.Nodes(), keeping
// output byte-identical across runs.
func RenderEnv(fab *fabric.Fabric, labName, frrDir string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "COMPOSE_PROJECT_NAME=%s\n", labName)
	fmt.Fprintf(&b, "LAB_NAME=%s\n", labName)
	fmt.Fprintf(&b, "FRR_DIR=%s\n", frrDir)
	fmt.Fprintf(&b, "FABRIC_SUBNET=%s\n", fab.Subnet)
	for _, n := range fab.Nodes() {
		fmt.Fprintf(&b, "%s=%s\n", EnvKey(n.Name), n.Addr)
	}
	return b.String()
}

// WriteEnvFile writes the .env bindings to path.
func WriteEnvFile(fab *fabric.Fabric, labName, frrDir, path string) error {
	if err := os.WriteFile(path, []byte(RenderEnv(fab, labName, frrDir)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
