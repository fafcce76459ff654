package asset

import "time"

// CreationRecord is the first entry in every asset's provenance chain.
type CreationRecord struct {
	Creator   string
	Timestamp time.Time
}

// MigrationRecord documents a layer transition. The Bitcoin-specific
// fields are populated only for transitions landing on btco.
type MigrationRecord struct {
	FromLayer  Layer
	ToLayer    Layer
	Timestamp  time.Time
	RevealTxID string
	CommitTxID string
	Inscription string
	Satoshi    uint64
	FeeRate    float64
}

// TransferRecord documents an ownership transfer within the btco layer.
type TransferRecord struct {
	FromAddressOrDID string
	ToAddress        string
	Timestamp        time.Time
	TxID             string
}

// ResourceUpdateRecord documents a resource version bump.
type ResourceUpdateRecord struct {
	ResourceID string
	FromVersion int
	ToVersion   int
	Timestamp   time.Time
}

// DeactivationRecord documents a did:btco deactivation marker inscribed
// on an asset's satoshi. At most one ever appears in a given Chain.
type DeactivationRecord struct {
	Timestamp  time.Time
	Satoshi    uint64
	RevealTxID string
	CommitTxID string
}

// Chain is the asset's append-only provenance history. Records are
// totally ordered by Timestamp and, once appended, immutable; migrations
// form a monotonic sequence along the allowed layer transitions.
type Chain struct {
	Creation  CreationRecord
	Migrations []MigrationRecord
	Transfers  []TransferRecord
	ResourceUpdates []ResourceUpdateRecord
	Deactivation    *DeactivationRecord
}

// Summary is the compact view returned by getProvenanceSummary.
type Summary struct {
	Created        time.Time
	Creator        string
	CurrentLayer   Layer
	MigrationCount int
	TransferCount  int
	LastActivity   time.Time
}

// Summarize reduces a full provenance Chain to its compact Summary.
func (c *Chain) Summarize(currentLayer Layer) Summary {
	last := c.Creation.Timestamp
	for _, m := range c.Migrations {
		if m.Timestamp.After(last) {
			last = m.Timestamp
		}
	}
	for _, tr := range c.Transfers {
		if tr.Timestamp.After(last) {
			last = tr.Timestamp
		}
	}
	for _, r := range c.ResourceUpdates {
		if r.Timestamp.After(last) {
			last = r.Timestamp
		}
	}
	if c.Deactivation != nil && c.Deactivation.Timestamp.After(last) {
		last = c.Deactivation.Timestamp
	}

	return Summary{
		Created:        c.Creation.Timestamp,
		Creator:        c.Creation.Creator,
		CurrentLayer:   currentLayer,
		MigrationCount: len(c.Migrations),
		TransferCount:  len(c.Transfers),
		LastActivity:   last,
	}
}
