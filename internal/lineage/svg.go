package lineage

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// OptionalDependencyError reports that the external Graphviz renderer is not
// installed. SVG is the only export that needs it; every other format works
// without.
type OptionalDependencyError struct {
	Binary string
}

func (e *OptionalDependencyError) Error() string {
	return fmt.Sprintf("optional dependency missing: Graphviz %q not found on PATH; install graphviz or use DOT/HTML/JSON export", e.Binary)
}

// SVG renders the graph by piping DOT through the Graphviz "dot" binary.
// dotPath defaults to "dot"; the caller bounds the render through ctx.
func (g *Graph) SVG(ctx context.Context, dotPath string) ([]byte, error) {
	if dotPath == "" {
		dotPath = "dot"
	}
	resolved, err := exec.LookPath(dotPath)
	if err != nil {
		return nil, &OptionalDependencyError{Binary: dotPath}
	}

	cmd := exec.CommandContext(ctx, resolved, "-Tsvg")
	cmd.Stdin = strings.NewReader(g.DOT())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, eris.Wrapf(err, "lineage: dot -Tsvg failed: %s", stderr.String())
	}
	return stdout.Bytes(), nil
}
