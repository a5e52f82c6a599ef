package cli

import (
	"fmt"
	"os"

	"github.com/roach88/cee/internal/graph"
	"github.com/roach88/cee/internal/schema"
)

// loadGraph reads and boundary-validates a graph JSON file.
//
// Unreadable files are command errors (exit 2); schema rejections are
// validation failures (exit 1) and carry the field-level errors as details.
func loadGraph(path string, formatter *OutputFormatter) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot read graph file %s", path), err)
	}

	g, errs := schema.DecodeGraph(data)
	if len(errs) > 0 {
		if err := formatter.Failure(errs[0].Code, "graph payload failed boundary validation", errs); err != nil {
			return nil, err
		}
		return nil, NewExitError(ExitFailure, "graph payload failed boundary validation")
	}

	formatter.VerboseLog("loaded %s: %d nodes, %d edges", path, len(g.Nodes), len(g.Edges))
	return g, nil
}
