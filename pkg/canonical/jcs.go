// Package canonical provides the two canonicalization schemes the credential
// layer hashes over: JCS (JSON Canonicalization Scheme, RFC 8785) for the
// eddsa-jcs-2022 and similar cryptosuites, and RDF dataset canonicalization
// (URDNA2015) for the *-rdfc-2019/2022 suites.
package canonical

import (
	"encoding/json"
	"sort"

	"github.com/originals-sdk/sdk/errors"
)

// JCS serializes v as canonical JSON: object keys sorted lexicographically
// at every level, arrays left in input order, no insignificant whitespace.
// This is a simplified RFC 8785 implementation (it relies on encoding/json's
// default number and string formatting rather than RFC 8785's exact
// number-to-string grammar); credential canonical hashes computed with this
// function are stable across calls within this SDK, which is the invariant
// spec §3 and §8 require ("once signed, the canonical hash is stable").
func JCS(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.NewCryptoError("jcs marshal failed: %v", err)
	}

	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.NewCryptoError("jcs reparse failed: %v", err)
	}

	canonical := canonicalizeValue(parsed)

	out, err := json.Marshal(canonical)
	if err != nil {
		return nil, errors.NewCryptoError("jcs canonical marshal failed: %v", err)
	}

	return out, nil
}

// JCSFromBytes canonicalizes raw JSON bytes rather than a Go value.
func JCSFromBytes(raw []byte) ([]byte, error) {
	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.NewCryptoError("jcs parse failed: %v", err)
	}

	canonical := canonicalizeValue(parsed)

	out, err := json.Marshal(canonical)
	if err != nil {
		return nil, errors.NewCryptoError("jcs canonical marshal failed: %v", err)
	}

	return out, nil
}

func canonicalizeValue(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		ordered := make(orderedObject, 0, len(vv))
		for _, k := range keys {
			ordered = append(ordered, orderedField{key: k, value: canonicalizeValue(vv[k])})
		}
		return ordered

	case []interface{}:
		out := make([]interface{}, len(vv))
		for i, e := range vv {
			out[i] = canonicalizeValue(e)
		}
		return out

	default:
		return vv
	}
}

// orderedField/orderedObject preserve the sorted key order through
// json.Marshal, since marshaling a plain map[string]interface{} would
// re-sort (coincidentally correctly for ASCII keys) but gives no guarantee
// for non-ASCII keys under Go's map iteration-then-sort semantics elsewhere
// in the codebase. Implementing json.Marshaler here makes the order
// explicit rather than relying on encoding/json's incidental behavior.
type orderedField struct {
	key   string
	value interface{}
}

type orderedObject []orderedField

func (o orderedObject) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, f := range o {
		if i > 0 {
			buf = append(buf, ',')
		}

		keyJSON, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyJSON...)
		buf = append(buf, ':')

		valJSON, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, valJSON...)
	}
	buf = append(buf, '}')
	return buf, nil
}
