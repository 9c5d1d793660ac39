// Package emit renders lab artifacts from a generated fabric: per-node
// FRR configuration trees, the Docker Compose manifest, and the .env
// bindings the manifest interpolates. Emitters consume only the fabric
// structure; they never feed anything back into allocation.
package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/frrlab/frrlab/pkg/fabric"
	"github.com/frrlab/frrlab/pkg/util"
)

// Writer emits all artifacts for one lab under Dir.
type Writer struct {
	Dir   string // lab directory, e.g. labs/lab1
	Force bool   // overwrite an existing, non-empty lab
}

// WriteAll renders the full artifact set. Nothing is written until the
// fabric has been fully generated, so a failed generation leaves no
// partial lab behind; an existing non-empty lab directory is refused
// unless Force is set.
func (w *Writer) WriteAll(fab *fabric.Fabric, writeEnv bool) error {
	if err := w.checkDir(); err != nil {
		return err
	}

	frrRoot := filepath.Join(w.Dir, "frr")
	if err := os.MkdirAll(frrRoot, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", frrRoot, err)
	}

	if err := WriteNodeConfigs(fab, frrRoot); err != nil {
		return err
	}

	composePath := filepath.Join(w.Dir, "docker-compose.yml")
	if _, err := os.Stat(composePath); err == nil && !w.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", composePath)
	}
	if err := WriteCompose(fab, composePath); err != nil {
		return err
	}

	if writeEnv {
		if err := WriteEnvFile(fab, w.labName(), w.frrDirRef(), filepath.Join(w.Dir, ".env")); err != nil {
			return err
		}
	}

	util.Infof("lab written to %s", w.Dir)
	return nil
}

// checkDir refuses to clobber an existing, non-empty lab directory
// unless Force is set.
func (w *Writer) checkDir() error {
	entries, err := os.ReadDir(w.Dir)
	if os.IsNotExist(err) {
		return os.MkdirAll(w.Dir, 0755)
	}
	if err != nil {
		return fmt.Errorf("reading lab directory %s: %w", w.Dir, err)
	}
	if len(entries) > 0 && !w.Force {
		return fmt.Errorf("lab directory %s is not empty (use --force to overwrite)", w.Dir)
	}
	return nil
}

// labName is what compose and env bindings call this lab.
func (w *Writer) labName() string {
	return filepath.Base(w.Dir)
}

// frrDirRef is the FRR_DIR value in .env: the frr tree relative to where
// compose runs, kept relative when the lab path itself is relative.
func (w *Writer) frrDirRef() string {
	p := filepath.ToSlash(filepath.Join(w.Dir, "frr"))
	if filepath.IsAbs(w.Dir) {
		return p
	}
	return "./" + p
}
