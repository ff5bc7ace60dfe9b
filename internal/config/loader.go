package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/ganttsolver/internal/ctxlog"
)

// ErrInvalidPlan marks any schema or validation failure in a plan file.
var ErrInvalidPlan = errors.New("invalid plan")

// Loader parses plan files into the agnostic Plan model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new plan loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads, decodes, translates, and validates a single plan file. Files
// ending in .json are parsed with HCL's JSON syntax; everything else is
// parsed as native HCL.
func (l *Loader) Load(ctx context.Context, path string) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading plan file.", "path", path)

	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.EqualFold(filepath.Ext(path), ".json") {
		file, diags = l.parser.ParseJSONFile(path)
	} else {
		file, diags = l.parser.ParseHCLFile(path)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, diags)
	}

	var parsed hclPlanFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode plan file %s: %w (%v)", path, ErrInvalidPlan, diags)
	}

	plan, err := translate(&parsed)
	if err != nil {
		return nil, fmt.Errorf("plan file %s: %w", path, err)
	}
	if err := plan.validate(); err != nil {
		return nil, fmt.Errorf("plan file %s: %w", path, err)
	}

	logger.Debug("Plan loaded and translated into unified model.",
		"tasks", len(plan.Tasks),
		"max_resources_in_parallel", plan.MaxResourcesInParallel,
	)
	return plan, nil
}

// translate evaluates the raw HCL expressions into the agnostic model and
// applies defaults: a missing name falls back to the task id, a missing
// lag_time to zero.
func translate(parsed *hclPlanFile) (*Plan, error) {
	plan := &Plan{Tasks: make(map[string]*TaskDef, len(parsed.Tasks))}

	capacity, err := evalInt(parsed.MaxResourcesInParallel, "max_resources_in_parallel")
	if err != nil {
		return nil, err
	}
	plan.MaxResourcesInParallel = capacity

	if parsed.MaxDuration != nil {
		maxDuration, err := evalInt(parsed.MaxDuration, "max_duration")
		if err != nil {
			return nil, err
		}
		plan.MaxDuration = maxDuration
	}

	for _, t := range parsed.Tasks {
		if _, exists := plan.Tasks[t.ID]; exists {
			return nil, fmt.Errorf("duplicate task %q: %w", t.ID, ErrInvalidPlan)
		}

		def := &TaskDef{ID: t.ID, Name: t.ID}
		if t.Name != nil {
			name, err := evalString(t.Name, fmt.Sprintf("task %q name", t.ID))
			if err != nil {
				return nil, err
			}
			def.Name = name
		}

		if def.NumResources, err = evalInt(t.NumResources, fmt.Sprintf("task %q num_resources", t.ID)); err != nil {
			return nil, err
		}
		if def.Duration, err = evalInt(t.Duration, fmt.Sprintf("task %q duration", t.ID)); err != nil {
			return nil, err
		}

		for _, d := range t.Dependencies {
			dep := DependencyDef{ProjectID: d.ProjectID}
			if d.LagTime != nil {
				lag, err := evalInt(d.LagTime, fmt.Sprintf("task %q dependency on %q lag_time", t.ID, d.ProjectID))
				if err != nil {
					return nil, err
				}
				dep.LagTime = lag
			}
			def.Dependencies = append(def.Dependencies, dep)
		}

		plan.Tasks[t.ID] = def
	}

	return plan, nil
}

// validate enforces the semantic rules the schema alone cannot express.
func (p *Plan) validate() error {
	if p.MaxResourcesInParallel <= 0 {
		return fmt.Errorf("max_resources_in_parallel must be positive (got %d): %w", p.MaxResourcesInParallel, ErrInvalidPlan)
	}
	if p.MaxDuration < 0 {
		return fmt.Errorf("max_duration must not be negative (got %d): %w", p.MaxDuration, ErrInvalidPlan)
	}
	if len(p.Tasks) == 0 {
		return fmt.Errorf("plan defines no tasks: %w", ErrInvalidPlan)
	}
	for id, t := range p.Tasks {
		if t.Duration <= 0 {
			return fmt.Errorf("task %q: duration must be positive (got %d): %w", id, t.Duration, ErrInvalidPlan)
		}
		if t.NumResources < 0 {
			return fmt.Errorf("task %q: num_resources must not be negative (got %d): %w", id, t.NumResources, ErrInvalidPlan)
		}
	}
	return nil
}

// evalInt evaluates a constant expression and converts it to a Go int.
func evalInt(expr hcl.Expression, what string) (int, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("%s: %w (%v)", what, ErrInvalidPlan, diags)
	}
	converted, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("%s: cannot convert %s to a number: %w", what, val.Type().FriendlyName(), ErrInvalidPlan)
	}
	var out int
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return 0, fmt.Errorf("%s: %v: %w", what, err, ErrInvalidPlan)
	}
	return out, nil
}

// evalString evaluates a constant expression and converts it to a Go string.
func evalString(expr hcl.Expression, what string) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("%s: %w (%v)", what, ErrInvalidPlan, diags)
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("%s: cannot convert %s to a string: %w", what, val.Type().FriendlyName(), ErrInvalidPlan)
	}
	var out string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return "", fmt.Errorf("%s: %v: %w", what, err, ErrInvalidPlan)
	}
	return out, nil
}
