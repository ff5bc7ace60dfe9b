package config

import (
	"github.com/hashicorp/hcl/v2"
)

// hclPlanFile represents the top-level structure of a plan file for decoding.
// There is deliberately no `,remain` escape hatch anywhere in these structs:
// an attribute or block the schema does not know about fails the decode.
type hclPlanFile struct {
	MaxResourcesInParallel hcl.Expression `hcl:"max_resources_in_parallel"`
	MaxDuration            hcl.Expression `hcl:"max_duration,optional"`
	Tasks                  []*hclTask     `hcl:"task,block"`
}

// hclTask represents a single `task` block. Scalar attributes are kept as
// raw expressions; the translate step evaluates them into the agnostic model.
type hclTask struct {
	ID           string           `hcl:"id,label"`
	Name         hcl.Expression   `hcl:"name,optional"`
	NumResources hcl.Expression   `hcl:"num_resources"`
	Duration     hcl.Expression   `hcl:"duration"`
	Dependencies []*hclDependency `hcl:"dependency,block"`
}

// hclDependency represents a `dependency` block within a task.
type hclDependency struct {
	ProjectID string         `hcl:"project_id"`
	LagTime   hcl.Expression `hcl:"lag_time,optional"`
}
