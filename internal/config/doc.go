// Package config loads a project plan from disk and translates it into the
// format-agnostic model the rest of the application consumes. Plans are
// written in HCL (or the equivalent JSON syntax); decoding rejects unknown
// attributes and blocks, so a plan that parses is also schema-valid.
package config
