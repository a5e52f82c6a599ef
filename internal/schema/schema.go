// Package schema validates candidate graph payloads at the process
// boundary. The repair engine assumes well-typed input; everything
// wrong-typed is rejected here, with field-level errors, before decode.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/cee/internal/graph"
)

//go:embed schema.cue
var schemaCUE string

// Validation error codes (E001-E099).
const (
	ErrInvalidJSON     = "E001" // payload is not valid JSON
	ErrSchemaViolation = "E002" // payload violates the graph schema
	ErrDuplicateNodeID = "E003" // two nodes share an id
	ErrSchemaInternal  = "E004" // embedded schema failed to compile
)

// ValidationError is one field-level boundary rejection.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
	schemaErr   error
)

// graphSchema compiles the embedded CUE schema once per process.
// cue.Value is immutable and safe for concurrent unification.
func graphSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = err
			return
		}
		schemaValue = v.LookupPath(cue.ParsePath("#Graph"))
		if err := schemaValue.Err(); err != nil {
			schemaErr = err
		}
	})
	return schemaValue, schemaErr
}

// ValidateGraphJSON vets a JSON payload against the graph schema.
// Returns all violations found (does not fail fast); an empty slice means
// the payload is well-typed.
func ValidateGraphJSON(data []byte) []ValidationError {
	schema, err := graphSchema()
	if err != nil {
		return []ValidationError{{Code: ErrSchemaInternal, Message: err.Error()}}
	}

	ctx := schema.Context()
	expr, err := cuejson.Extract("payload.json", data)
	if err != nil {
		return []ValidationError{{Code: ErrInvalidJSON, Message: err.Error()}}
	}

	payload := ctx.BuildExpr(expr)
	if err := payload.Err(); err != nil {
		return []ValidationError{{Code: ErrInvalidJSON, Message: err.Error()}}
	}

	unified := schema.Unify(payload)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return cueErrorsToValidation(err)
	}
	return nil
}

// DecodeGraph validates and decodes a JSON payload into a graph. The
// returned error list is non-empty exactly when the graph is nil.
//
// Beyond the CUE schema, node ids must be unique: the repair engine indexes
// nodes by id and silently-last-wins duplicates would corrupt the audit
// trail's attribution.
func DecodeGraph(data []byte) (*graph.Graph, []ValidationError) {
	if errs := ValidateGraphJSON(data); len(errs) > 0 {
		return nil, errs
	}

	var g graph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, []ValidationError{{Code: ErrInvalidJSON, Message: err.Error()}}
	}

	var errs []ValidationError
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if seen[n.ID] {
			errs = append(errs, ValidationError{
				Field:   "nodes.id",
				Code:    ErrDuplicateNodeID,
				Message: fmt.Sprintf("duplicate node id %q", n.ID),
			})
		}
		seen[n.ID] = true
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &g, nil
}

// cueErrorsToValidation flattens a CUE error into field-level rejections.
func cueErrorsToValidation(err error) []ValidationError {
	var out []ValidationError
	for _, cerr := range cueerrors.Errors(err) {
		field := ""
		if path := cerr.Path(); len(path) > 0 {
			field = pathString(path)
		}
		out = append(out, ValidationError{
			Field:   field,
			Code:    ErrSchemaViolation,
			Message: cerr.Error(),
		})
	}
	if len(out) == 0 {
		out = append(out, ValidationError{Code: ErrSchemaViolation, Message: err.Error()})
	}
	return out
}

func pathString(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
