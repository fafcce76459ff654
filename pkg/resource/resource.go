// Package resource implements the content-addressed, versioned resource
// store: immutable byte blobs with hash-chained history.
package resource

import (
	"regexp"
	"time"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/crypto"
)

// Type tags the semantic role of a resource's content.
type Type string

const (
	TypeCode   Type = "code"
	TypeText   Type = "text"
	TypeImage  Type = "image"
	TypeAudio  Type = "audio"
	TypeVideo  Type = "video"
	TypeDoc    Type = "document"
	TypeData   Type = "data"
	TypeConfig Type = "config"
	TypeOther  Type = "other"
)

var validTypes = map[Type]bool{
	TypeCode: true, TypeText: true, TypeImage: true, TypeAudio: true,
	TypeVideo: true, TypeDoc: true, TypeData: true, TypeConfig: true, TypeOther: true,
}

var contentTypePattern = regexp.MustCompile(`^[a-zA-Z0-9!#$&^_.+-]+/[a-zA-Z0-9!#$&^_.+-]+$`)

// DefaultMaxContentSize is the default content size ceiling (10 MiB).
const DefaultMaxContentSize = 10 * 1024 * 1024

// Resource is an immutable, content-addressed byte blob with a version
// chain back to its previous revision.
type Resource struct {
	ID                 string
	Type               Type
	ContentType        string
	Hash               string
	Size               int64
	Version            int
	PreviousVersionHash string
	CreatedAt          time.Time
	URL                string
	Content             []byte
}

// CreateOptions configures Manager.Create.
type CreateOptions struct {
	ID                string
	Type              Type
	ContentType       string
	URL               string
	MaxContentSize    int64
	AllowedContentTypes []string
}

// ValidationResult is returned by Validate.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ChainResult is returned by VerifyChain.
type ChainResult struct {
	Valid  bool
	Errors []string
}

// Manager owns a process-local map of resource histories, keyed by logical
// resource id, per spec §5's "no process-wide singletons" resource policy.
type Manager struct {
	histories map[string][]*Resource
	byHash    map[string]*Resource
}

// NewManager constructs an empty resource manager.
func NewManager() *Manager {
	return &Manager{
		histories: make(map[string][]*Resource),
		byHash:    make(map[string]*Resource),
	}
}

// HashContent hashes bytes; exposed on Manager so callers don't need to
// import pkg/crypto directly for this one operation.
func (m *Manager) HashContent(content []byte) string {
	return crypto.HashContent(content)
}

// Create validates content and options and stores version 1 of a new
// resource.
func (m *Manager) Create(content []byte, opts CreateOptions) (*Resource, error) {
	if content == nil {
		return nil, errors.NewValidationError("resource content is required")
	}
	if opts.Type == "" || !validTypes[opts.Type] {
		return nil, errors.NewValidationError("resource type %q is invalid", opts.Type)
	}
	if opts.ContentType == "" {
		return nil, errors.NewValidationError("resource content type is required")
	}
	if !contentTypePattern.MatchString(opts.ContentType) {
		return nil, errors.NewValidationError("resource content type %q must be of the form a/b", opts.ContentType)
	}

	maxSize := opts.MaxContentSize
	if maxSize <= 0 {
		maxSize = DefaultMaxContentSize
	}
	if int64(len(content)) > maxSize {
		return nil, errors.NewValidationError("resource content size %d exceeds max %d", len(content), maxSize)
	}

	if len(opts.AllowedContentTypes) > 0 {
		allowed := false
		for _, ct := range opts.AllowedContentTypes {
			if ct == opts.ContentType {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, errors.NewValidationError("resource content type %q is not in the allow-list", opts.ContentType)
		}
	}

	id := opts.ID
	if id == "" {
		id = crypto.HashContent(content)
	}

	if _, exists := m.histories[id]; exists {
		return nil, errors.NewConflictError("resource %q already exists", id)
	}

	r := &Resource{
		ID:          id,
		Type:        opts.Type,
		ContentType: opts.ContentType,
		Hash:        crypto.HashContent(content),
		Size:        int64(len(content)),
		Version:     1,
		CreatedAt:   time.Now(),
		URL:         opts.URL,
		Content:     content,
	}

	m.histories[id] = []*Resource{r}
	m.byHash[r.Hash] = r

	return r, nil
}

// Update appends a new version to an existing resource's history. It
// rejects no-op updates (identical content hash) and unknown ids.
func (m *Manager) Update(id string, newContent []byte, opts CreateOptions) (*Resource, error) {
	history, ok := m.histories[id]
	if !ok || len(history) == 0 {
		return nil, errors.NewResourceNotFoundError("resource %q not found", id)
	}

	prev := history[len(history)-1]
	newHash := crypto.HashContent(newContent)
	if newHash == prev.Hash {
		return nil, errors.NewValidationError("update content is identical to the current version of %q", id)
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = prev.ContentType
	}
	rtype := opts.Type
	if rtype == "" {
		rtype = prev.Type
	}

	maxSize := opts.MaxContentSize
	if maxSize <= 0 {
		maxSize = DefaultMaxContentSize
	}
	if int64(len(newContent)) > maxSize {
		return nil, errors.NewValidationError("resource content size %d exceeds max %d", len(newContent), maxSize)
	}

	next := &Resource{
		ID:                  id,
		Type:                rtype,
		ContentType:         contentType,
		Hash:                newHash,
		Size:                int64(len(newContent)),
		Version:             prev.Version + 1,
		PreviousVersionHash: prev.Hash,
		CreatedAt:           time.Now(),
		URL:                 opts.URL,
		Content:             newContent,
	}

	m.histories[id] = append(history, next)
	m.byHash[next.Hash] = next

	return next, nil
}

// History returns the full version history of a resource, oldest first.
func (m *Manager) History(id string) []*Resource {
	return append([]*Resource{}, m.histories[id]...)
}

// VersionAt returns a specific version of a resource, or nil if absent.
func (m *Manager) VersionAt(id string, version int) *Resource {
	for _, r := range m.histories[id] {
		if r.Version == version {
			return r
		}
	}
	return nil
}

// Current returns the latest version of a resource, or nil if unknown.
func (m *Manager) Current(id string) *Resource {
	history := m.histories[id]
	if len(history) == 0 {
		return nil
	}
	return history[len(history)-1]
}

// ByHash looks up a resource version by its content hash.
func (m *Manager) ByHash(hash string) *Resource {
	return m.byHash[hash]
}

// Validate checks a standalone resource for structural consistency.
func (m *Manager) Validate(r *Resource) ValidationResult {
	result := ValidationResult{Valid: true}

	if r == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "resource is nil")
		return result
	}
	if !validTypes[r.Type] {
		result.Valid = false
		result.Errors = append(result.Errors, "invalid resource type")
	}
	if !contentTypePattern.MatchString(r.ContentType) {
		result.Valid = false
		result.Errors = append(result.Errors, "invalid content type")
	}
	if r.Version < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, "version must be >= 1")
	}
	if r.Version == 1 && r.PreviousVersionHash != "" {
		result.Valid = false
		result.Errors = append(result.Errors, "version 1 must not have a previousVersionHash")
	}
	if r.Version > 1 && r.PreviousVersionHash == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "version > 1 must have a previousVersionHash")
	}
	if r.Content != nil && crypto.HashContent(r.Content) != r.Hash {
		result.Valid = false
		result.Errors = append(result.Errors, "hash does not match content")
	}

	return result
}

// VerifyChain walks a resource's history in order and checks that every
// version >= 2's previousVersionHash equals the hash of the version
// immediately preceding it.
func (m *Manager) VerifyChain(id string) ChainResult {
	history := m.histories[id]
	result := ChainResult{Valid: true}

	for i := 1; i < len(history); i++ {
		if history[i].PreviousVersionHash != history[i-1].Hash {
			result.Valid = false
			result.Errors = append(result.Errors,
				errors.NewValidationError(
					"version %d previousVersionHash does not match version %d hash",
					history[i].Version, history[i-1].Version,
				).Error(),
			)
		}
		if history[i].Version != history[i-1].Version+1 {
			result.Valid = false
			result.Errors = append(result.Errors, "version sequence is not contiguous")
		}
	}

	return result
}

// Delete removes a resource and its entire history. Returns false if the
// resource was unknown.
func (m *Manager) Delete(id string) bool {
	history, ok := m.histories[id]
	if !ok {
		return false
	}
	for _, r := range history {
		delete(m.byHash, r.Hash)
	}
	delete(m.histories, id)
	return true
}

// Import adds a resource version produced elsewhere (e.g. another
// process's Export), de-duplicating on (id, version).
func (m *Manager) Import(r *Resource) (*Resource, error) {
	if r == nil {
		return nil, errors.NewValidationError("cannot import a nil resource")
	}

	for _, existing := range m.histories[r.ID] {
		if existing.Version == r.Version {
			if existing.Hash != r.Hash {
				return nil, errors.NewConflictError(
					"import of %q version %d conflicts with existing hash", r.ID, r.Version,
				)
			}
			return existing, nil
		}
	}

	m.histories[r.ID] = append(m.histories[r.ID], r)
	m.byHash[r.Hash] = r

	sortByVersion(m.histories[r.ID])

	return r, nil
}

// Export returns every resource version held by this manager.
func (m *Manager) Export() []*Resource {
	var out []*Resource
	for _, history := range m.histories {
		out = append(out, history...)
	}
	return out
}

func sortByVersion(history []*Resource) {
	for i := 1; i < len(history); i++ {
		for j := i; j > 0 && history[j].Version < history[j-1].Version; j-- {
			history[j], history[j-1] = history[j-1], history[j]
		}
	}
}
