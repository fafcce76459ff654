package kind

import (
	"fmt"
	"strings"
)

var validRuntimes = []string{"node", "bun", "deno", "python", "go", "browser", "other"}
var validPlatforms = []string{"linux", "darwin", "windows"}

type appValidator struct{}

func (appValidator) ValidateKind(m *Manifest, strict bool, result *ValidationResult) {
	runtime, _ := metaString(m, "runtime")
	if runtime == "" {
		result.Errors = append(result.Errors, "app manifest requires metadata.runtime")
	} else if !contains(validRuntimes, runtime) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unrecognized app runtime %q", runtime))
	}

	if entrypoint, _ := metaString(m, "entrypoint"); entrypoint == "" {
		result.Errors = append(result.Errors, "app manifest requires metadata.entrypoint")
	}

	if platforms, ok := metaStringSlice(m, "platforms"); ok {
		for _, p := range platforms {
			if !contains(validPlatforms, p) {
				result.Errors = append(result.Errors, fmt.Sprintf("unsupported app platform %q", p))
			}
		}
	}
}

var validModuleFormats = []string{"esm", "cjs", "umd", "system"}

type moduleValidator struct{}

func (moduleValidator) ValidateKind(m *Manifest, strict bool, result *ValidationResult) {
	format, _ := metaString(m, "format")
	if format == "" || !contains(validModuleFormats, format) {
		result.Errors = append(result.Errors, fmt.Sprintf("module manifest has invalid format %q", format))
	}

	if main, _ := metaString(m, "main"); main == "" {
		result.Errors = append(result.Errors, "module manifest requires metadata.main")
	}

	if _, ok := metaString(m, "types"); !ok {
		result.Warnings = append(result.Warnings, "module manifest has no metadata.types")
	}
}

var validPrivacy = []string{"public", "private", "internal", "confidential"}

type datasetValidator struct{}

func (datasetValidator) ValidateKind(m *Manifest, strict bool, result *ValidationResult) {
	if schema, _ := metaString(m, "schema"); schema == "" {
		if _, ok := metaMap(m, "schema"); !ok {
			result.Errors = append(result.Errors, "dataset manifest requires metadata.schema")
		}
	}

	if columns, ok := metaStringSlice(m, "columns"); ok {
		seen := make(map[string]bool, len(columns))
		for _, c := range columns {
			if seen[c] {
				result.Errors = append(result.Errors, fmt.Sprintf("duplicate dataset column name %q", c))
			}
			seen[c] = true
		}
	}

	if privacy, ok := metaString(m, "privacy"); ok && !contains(validPrivacy, privacy) {
		result.Errors = append(result.Errors, fmt.Sprintf("invalid dataset privacy %q", privacy))
	}
}

var validMemoryTypes = []string{"session", "persistent", "none"}

type agentValidator struct{}

func (agentValidator) ValidateKind(m *Manifest, strict bool, result *ValidationResult) {
	capabilities, ok := metaStringSlice(m, "capabilities")
	if !ok || len(capabilities) == 0 {
		result.Errors = append(result.Errors, "agent manifest requires a non-empty metadata.capabilities")
	}

	if memory, ok := metaMap(m, "memory"); ok {
		memType, _ := memory["type"].(string)
		if !contains(validMemoryTypes, memType) {
			result.Errors = append(result.Errors, fmt.Sprintf("invalid agent memory.type %q", memType))
		}
	}

	if tools, ok := m.Metadata["tools"].([]interface{}); ok {
		for i, t := range tools {
			tm, ok := t.(map[string]interface{})
			if !ok {
				result.Errors = append(result.Errors, fmt.Sprintf("agent tool entry %d is malformed", i))
				continue
			}
			if name, _ := tm["name"].(string); name == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("agent tool entry %d is missing a name", i))
			}
		}
	}
}

var validMediaTypes = []string{"image", "audio", "video", "animation", "other"}

type mediaValidator struct{}

func (mediaValidator) ValidateKind(m *Manifest, strict bool, result *ValidationResult) {
	mediaType, _ := metaString(m, "mediaType")
	if !contains(validMediaTypes, mediaType) {
		result.Errors = append(result.Errors, fmt.Sprintf("invalid media mediaType %q", mediaType))
	}

	if mime, ok := metaString(m, "mimeType"); ok {
		if !strings.Contains(mime, "/") {
			result.Errors = append(result.Errors, fmt.Sprintf("invalid media mimeType %q", mime))
		}
	}

	if dims, ok := metaMap(m, "dimensions"); ok {
		width, _ := dims["width"].(float64)
		height, _ := dims["height"].(float64)
		if width <= 0 || height <= 0 {
			result.Errors = append(result.Errors, "media dimensions must have positive width and height")
		}
	}

	if mediaType == "image" {
		if alt, _ := metaString(m, "alt"); alt == "" {
			result.Warnings = append(result.Warnings, "media image is missing alt text")
		}
	}
}

var validDocFormats = []string{"markdown", "pdf", "html", "latex", "plaintext", "rst", "asciidoc"}
var validDocStatus = []string{"draft", "review", "published", "archived"}

type documentValidator struct{}

func (documentValidator) ValidateKind(m *Manifest, strict bool, result *ValidationResult) {
	format, _ := metaString(m, "format")
	if !contains(validDocFormats, format) {
		result.Errors = append(result.Errors, fmt.Sprintf("invalid document format %q", format))
	}

	if toc, ok := m.Metadata["toc"].([]interface{}); ok {
		for i, entry := range toc {
			em, ok := entry.(map[string]interface{})
			if !ok {
				result.Errors = append(result.Errors, fmt.Sprintf("document toc entry %d is malformed", i))
				continue
			}
			if title, _ := em["title"].(string); title == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("document toc entry %d is missing a title", i))
			}
			if level, _ := em["level"].(float64); level <= 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("document toc entry %d must have a positive level", i))
			}
		}
	}

	if refs, ok := m.Metadata["references"].([]interface{}); ok {
		seen := make(map[string]bool, len(refs))
		for i, r := range refs {
			rm, ok := r.(map[string]interface{})
			if !ok {
				continue
			}
			id, _ := rm["id"].(string)
			if seen[id] {
				result.Errors = append(result.Errors, fmt.Sprintf("document reference %d duplicates id %q", i, id))
			}
			seen[id] = true
		}
	}

	if status, ok := metaString(m, "status"); ok && !contains(validDocStatus, status) {
		result.Errors = append(result.Errors, fmt.Sprintf("invalid document status %q", status))
	}
}
