package kind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validManifest(k Kind) *Manifest {
	return &Manifest{
		Kind:      k,
		Name:      "widget",
		Version:   "1.0.0",
		Resources: []ResourceRef{{ID: "r1", Type: "code", ContentType: "text/plain"}},
		Metadata:  map[string]interface{}{},
	}
}

func TestParseKindAcceptsShortAndURIForm(t *testing.T) {
	k, err := ParseKind("app")
	require.NoError(t, err)
	assert.Equal(t, App, k)

	k2, err := ParseKind("originals:kind:app")
	require.NoError(t, err)
	assert.Equal(t, App, k2)
}

func TestParseKindRejectsUnknown(t *testing.T) {
	_, err := ParseKind("bogus")
	require.Error(t, err)
}

func TestValidateBaseRequiresNameVersionResources(t *testing.T) {
	m := &Manifest{Kind: App, Metadata: map[string]interface{}{"runtime": "go", "entrypoint": "main.go"}}
	result := Validate(m, ValidateOptions{})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "name is required")
	assert.Contains(t, result.Errors, "at least one resource is required")
}

func TestValidateRejectsDuplicateResourceIds(t *testing.T) {
	m := validManifest(App)
	m.Resources = append(m.Resources, ResourceRef{ID: "r1", Type: "code", ContentType: "text/plain"})
	m.Metadata["runtime"] = "go"
	m.Metadata["entrypoint"] = "main.go"

	result := Validate(m, ValidateOptions{})
	assert.False(t, result.Valid)
}

func TestAppManifestValidation(t *testing.T) {
	m := validManifest(App)
	m.Metadata["runtime"] = "go"
	m.Metadata["entrypoint"] = "main.go"

	result := Validate(m, ValidateOptions{})
	assert.True(t, result.Valid)

	m.Metadata["runtime"] = "cobol"
	result = Validate(m, ValidateOptions{})
	assert.True(t, result.Valid)
	assert.NotEmpty(t, result.Warnings)
}

func TestStrictModePromotesWarningsToErrors(t *testing.T) {
	m := validManifest(App)
	m.Metadata["runtime"] = "cobol"
	m.Metadata["entrypoint"] = "main.go"

	result := Validate(m, ValidateOptions{StrictMode: true})
	assert.False(t, result.Valid)
	assert.Empty(t, result.Warnings)
}

func TestDatasetManifestRejectsDuplicateColumns(t *testing.T) {
	m := validManifest(Dataset)
	m.Metadata["schema"] = "users"
	m.Metadata["columns"] = []string{"id", "id"}

	result := Validate(m, ValidateOptions{})
	assert.False(t, result.Valid)
}

func TestMediaManifestWarnsOnMissingAltText(t *testing.T) {
	m := validManifest(Media)
	m.Metadata["mediaType"] = "image"
	m.Metadata["mimeType"] = "image/png"

	result := Validate(m, ValidateOptions{})
	assert.True(t, result.Valid)
	assert.Contains(t, result.Warnings, "media image is missing alt text")
}

func TestDependencyVersionRangeValidated(t *testing.T) {
	m := validManifest(Module)
	m.Metadata["format"] = "esm"
	m.Metadata["main"] = "index.js"
	m.Dependencies = []Dependency{{DID: "did:peer:abc", VersionRange: "not-a-range!!"}}

	result := Validate(m, ValidateOptions{})
	assert.False(t, result.Valid)
}

func TestSkipValidationShortCircuits(t *testing.T) {
	result := Validate(&Manifest{}, ValidateOptions{SkipValidation: true})
	assert.True(t, result.Valid)
}

func TestCreateTemplate(t *testing.T) {
	tmpl := CreateTemplate(Agent, "my-agent", "")
	assert.Equal(t, "0.1.0", tmpl.Version)
	assert.Equal(t, Agent, tmpl.Kind)
}
