// Package kind implements the typed manifest registry: kind-specific
// validators over App, Agent, Module, Dataset, Media, and Document
// manifests.
package kind

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/originals-sdk/sdk/errors"
)

// Kind identifies a manifest's type.
type Kind string

const (
	App      Kind = "app"
	Agent    Kind = "agent"
	Module   Kind = "module"
	Dataset  Kind = "dataset"
	Media    Kind = "media"
	Document Kind = "document"
)

const kindURIPrefix = "originals:kind:"

// ParseKind accepts either a short name ("app") or a full URI
// ("originals:kind:app").
func ParseKind(s string) (Kind, error) {
	trimmed := strings.TrimPrefix(s, kindURIPrefix)
	k := Kind(trimmed)
	if _, ok := registry.validators[k]; !ok {
		return "", errors.NewValidationError("unknown manifest kind %q", s)
	}
	return k, nil
}

// URI returns the full kind URI form.
func (k Kind) URI() string {
	return kindURIPrefix + string(k)
}

// ResourceRef is the manifest-scoped subset of a resource reference.
type ResourceRef struct {
	ID          string
	Type        string
	ContentType string
}

// Dependency references another asset's DID, optionally constrained by a
// semver range.
type Dependency struct {
	DID           string
	VersionRange string
}

// Author identifies the manifest's author.
type Author struct {
	Name string
	DID  string
}

// Manifest is the typed descriptor attached to a did:peer-created asset.
type Manifest struct {
	Kind        Kind
	Name        string
	Version     string
	Description string
	Resources   []ResourceRef
	Dependencies []Dependency
	Author      *Author
	Tags        []string
	License     string
	Metadata    map[string]interface{}
}

// ValidationResult mirrors the Resource Manager's shape for consistency.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ValidateOptions configures a single Validate call.
type ValidateOptions struct {
	StrictMode     bool
	SkipValidation bool
}

// Validator validates kind-specific metadata beyond the base checks.
type Validator interface {
	ValidateKind(m *Manifest, strict bool, result *ValidationResult)
}

// Registry is the read-mostly, initialize-once singleton of kind
// validators. A Registry value is also usable standalone for tests that
// want isolation from the package-level singleton.
type Registry struct {
	validators map[Kind]Validator
}

var didPattern = regexp.MustCompile(`^did:[a-z0-9]+:.+$`)

var registry = newRegistryWithDefaults()

func newRegistryWithDefaults() *Registry {
	r := &Registry{validators: make(map[Kind]Validator)}
	r.RegisterValidator(App, appValidator{})
	r.RegisterValidator(Agent, agentValidator{})
	r.RegisterValidator(Module, moduleValidator{})
	r.RegisterValidator(Dataset, datasetValidator{})
	r.RegisterValidator(Media, mediaValidator{})
	r.RegisterValidator(Document, documentValidator{})
	return r
}

// RegisterValidator installs (or replaces) the validator for a kind.
func (r *Registry) RegisterValidator(k Kind, v Validator) {
	r.validators[k] = v
}

// RegisterValidator installs a validator on the package-level singleton.
func RegisterValidator(k Kind, v Validator) {
	registry.RegisterValidator(k, v)
}

// Validate runs base validation plus the kind-specific validator.
func (r *Registry) Validate(m *Manifest, opts ValidateOptions) ValidationResult {
	result := ValidationResult{Valid: true}

	if opts.SkipValidation {
		return result
	}
	if m == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "manifest is nil")
		return result
	}

	validateBase(m, &result)

	if v, ok := r.validators[m.Kind]; ok {
		v.ValidateKind(m, opts.StrictMode, &result)
	} else {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("no validator registered for kind %q", m.Kind))
	}

	if opts.StrictMode && len(result.Warnings) > 0 {
		result.Errors = append(result.Errors, result.Warnings...)
		result.Warnings = nil
	}
	if len(result.Errors) > 0 {
		result.Valid = false
	}

	return result
}

// Validate runs Validate against the package-level singleton registry.
func Validate(m *Manifest, opts ValidateOptions) ValidationResult {
	return registry.Validate(m, opts)
}

// ValidateOrThrow returns an error aggregating all validation failures.
func ValidateOrThrow(m *Manifest, opts ValidateOptions) error {
	result := Validate(m, opts)
	if !result.Valid {
		return errors.NewValidationError("manifest validation failed: %s", strings.Join(result.Errors, "; "))
	}
	return nil
}

// CreateTemplate returns a minimal skeleton manifest for a kind.
func CreateTemplate(k Kind, name string, version string) *Manifest {
	if version == "" {
		version = "0.1.0"
	}
	return &Manifest{
		Kind:    k,
		Name:    name,
		Version: version,
		Metadata: map[string]interface{}{},
	}
}

func validateBase(m *Manifest, result *ValidationResult) {
	if strings.TrimSpace(m.Name) == "" {
		result.Errors = append(result.Errors, "name is required")
	}

	if _, err := semver.NewVersion(m.Version); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("version %q is not valid semver: %v", m.Version, err))
	}

	if len(m.Resources) == 0 {
		result.Errors = append(result.Errors, "at least one resource is required")
	}

	seen := make(map[string]bool, len(m.Resources))
	for _, res := range m.Resources {
		if seen[res.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate resource id %q", res.ID))
		}
		seen[res.ID] = true
	}

	for _, dep := range m.Dependencies {
		if !didPattern.MatchString(dep.DID) {
			result.Errors = append(result.Errors, fmt.Sprintf("dependency DID %q is malformed", dep.DID))
			continue
		}
		if dep.VersionRange != "" {
			if _, err := semver.NewConstraint(dep.VersionRange); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("dependency version range %q is invalid: %v", dep.VersionRange, err))
			}
		}
	}
}

func metaString(m *Manifest, key string) (string, bool) {
	v, ok := m.Metadata[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func metaStringSlice(m *Manifest, key string) ([]string, bool) {
	v, ok := m.Metadata[key]
	if !ok {
		return nil, false
	}
	switch vv := v.(type) {
	case []string:
		return vv, true
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func metaMap(m *Manifest, key string) (map[string]interface{}, bool) {
	v, ok := m.Metadata[key]
	if !ok {
		return nil, false
	}
	mm, ok := v.(map[string]interface{})
	return mm, ok
}

func contains(slice []string, v string) bool {
	for _, s := range slice {
		if s == v {
			return true
		}
	}
	return false
}
