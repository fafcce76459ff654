package did

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/originals-sdk/sdk/errors"
	"github.com/originals-sdk/sdk/pkg/adapters"
	"github.com/originals-sdk/sdk/pkg/adapters/retry"
	"github.com/originals-sdk/sdk/pkg/bitcoin"
	"github.com/originals-sdk/sdk/pkg/crypto"
	"github.com/originals-sdk/sdk/settings"
	"github.com/originals-sdk/sdk/ulogger"
)

// LogFetcher retrieves the raw bytes of a did:webvh append-only log from
// its canonical HTTPS location. The default implementation uses net/http;
// tests supply an in-memory fake.
type LogFetcher interface {
	FetchLog(ctx context.Context, url string) ([]byte, error)
}

// HTTPLogFetcher is the production LogFetcher, bounded by the configured
// per-request timeout (spec §5: "default 15 s") and retried with
// exponential backoff on transient failures.
type HTTPLogFetcher struct {
	Client *http.Client
	Logger ulogger.Logger
}

// FetchLog performs a GET against url and returns the response body,
// retrying transient failures per the configured retry policy.
func (f *HTTPLogFetcher) FetchLog(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	var body []byte
	err := retry.Do(ctx, f.Logger, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.NewNetworkError(false, "webvh log request build failed: %v", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return errors.NewNetworkError(true, "webvh log fetch failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errors.NewNetworkError(resp.StatusCode >= 500, "webvh log fetch returned status %d", resp.StatusCode)
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.NewNetworkError(true, "webvh log read failed: %v", err)
		}
		body = b
		return nil
	}, retry.WithMessage("webvh log fetch, "), retry.WithRetryCount(3), retry.WithExponentialBackoff())

	if err != nil {
		return nil, err
	}
	return body, nil
}

// Resolver resolves did:peer, did:webvh, and did:btco identifiers into
// DID documents, per spec §4.3. It holds no global registry: every
// dependency is injected, matching spec §5's "no process-wide singletons
// other than the Kind Registry" constraint.
type Resolver struct {
	OrdinalsProvider adapters.OrdinalsProvider
	LogFetcher       LogFetcher
}

// NewResolver builds a Resolver. Either dependency may be nil if the
// caller never resolves that DID method.
func NewResolver(ordinals adapters.OrdinalsProvider, fetcher LogFetcher) *Resolver {
	if fetcher == nil {
		fetcher = &HTTPLogFetcher{}
	}
	return &Resolver{OrdinalsProvider: ordinals, LogFetcher: fetcher}
}

// ResolveDID dispatches to the method-specific resolution strategy based
// on the DID's method segment.
func (r *Resolver) ResolveDID(ctx context.Context, did string) (*Document, error) {
	parts := strings.SplitN(did, ":", 3)
	if len(parts) != 3 || parts[0] != "did" {
		return nil, errors.NewValidationError("malformed DID %q", did)
	}

	switch parts[1] {
	case "peer":
		return r.resolvePeer(did, parts[2])
	case "webvh":
		return r.resolveWebVH(ctx, did)
	case "btco":
		return r.resolveBTCO(ctx, did, parts[2])
	default:
		return nil, errors.NewValidationError("unsupported DID method %q", parts[1])
	}
}

// resolvePeer re-derives the document from the identifier alone: did:peer
// is self-certifying, so no network or store lookup is needed.
func (r *Resolver) resolvePeer(did, identifier string) (*Document, error) {
	multikey := strings.TrimPrefix(identifier, "0")

	keyType, _, err := crypto.DecodeMultikey(multikey)
	if err != nil {
		return nil, err
	}

	vmID := did + "#" + multikey
	return &Document{
		ID: did,
		VerificationMethod: []VerificationMethod{
			{ID: vmID, Controller: did, KeyType: keyType, PublicKeyMultibase: multikey},
		},
		Authentication:  []string{vmID},
		AssertionMethod: []string{vmID},
	}, nil
}

func (r *Resolver) resolveWebVH(ctx context.Context, did string) (*Document, error) {
	url := webURLForDID(did)

	body, err := r.LogFetcher.FetchLog(ctx, url)
	if err != nil {
		return nil, err
	}

	var entries []WebVHLogEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, errors.NewValidationError("webvh log at %q is malformed: %v", url, err)
	}
	if len(entries) == 0 {
		return nil, errors.NewResourceNotFoundError("webvh log at %q is empty", url)
	}

	return entries[len(entries)-1].State, nil
}

func (r *Resolver) resolveBTCO(ctx context.Context, did, rest string) (*Document, error) {
	if r.OrdinalsProvider == nil {
		return nil, errors.NewConfigurationError("did:btco resolution requires an ordinals provider")
	}

	segments := strings.Split(rest, ":")
	satStr := segments[len(segments)-1]
	satoshi, err := strconv.ParseUint(satStr, 10, 64)
	if err != nil {
		return nil, errors.NewValidationError("did:btco satoshi %q is not a valid number", satStr)
	}

	inscriptions, err := r.OrdinalsProvider.GetInscriptionsBySatoshi(ctx, satoshi)
	if err != nil {
		return nil, err
	}
	if len(inscriptions) == 0 {
		return nil, errors.NewResourceNotFoundError("no inscriptions found for satoshi %d", satoshi)
	}

	latest := inscriptions[len(inscriptions)-1]

	envelope, err := bitcoin.DecodeMetadataEnvelope(latest.Content)
	if err != nil {
		return nil, errors.NewValidationError("inscription content for satoshi %d is malformed: %v", satoshi, err)
	}

	if envelope.Deactivated {
		return &Document{ID: did, Satoshi: satoshi, InscriptionID: latest.InscriptionID, RevealTxID: latest.RevealTxID, Deactivated: true}, nil
	}

	// envelope.DIDDocument decodes generically (it may also carry a
	// verifiable credential's subject shape); round-trip it through CBOR
	// once more to land on the concrete Document type.
	raw, err := cbor.Marshal(envelope.DIDDocument)
	if err != nil {
		return nil, errors.NewValidationError("inscribed DID document for satoshi %d is malformed: %v", satoshi, err)
	}
	var doc Document
	if err := cbor.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewValidationError("inscribed DID document for satoshi %d is malformed: %v", satoshi, err)
	}

	doc.Satoshi = satoshi
	doc.InscriptionID = latest.InscriptionID
	doc.RevealTxID = latest.RevealTxID

	return &doc, nil
}

func webURLForDID(did string) string {
	r := &CreateWebVHResult{DID: did}
	return r.WebURL()
}

// WebVHNetworkTag returns the opaque domain-scoping tag used to separate
// webvh environments, per spec §6's webvhNetwork configuration option.
func WebVHNetworkTag(s *settings.Settings) string {
	return s.WebVHNetwork
}
