package asset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChainSummarizeUsesCreationWhenNoActivity(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	chain := Chain{Creation: CreationRecord{Creator: "alice", Timestamp: created}}

	summary := chain.Summarize(LayerPeer)

	assert.Equal(t, created, summary.Created)
	assert.Equal(t, "alice", summary.Creator)
	assert.Equal(t, LayerPeer, summary.CurrentLayer)
	assert.Equal(t, 0, summary.MigrationCount)
	assert.Equal(t, 0, summary.TransferCount)
	assert.Equal(t, created, summary.LastActivity)
}

func TestChainSummarizeFindsLatestAcrossAllRecordKinds(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	migrated := created.Add(time.Hour)
	transferred := created.Add(2 * time.Hour)
	updated := created.Add(3 * time.Hour)

	chain := Chain{
		Creation:   CreationRecord{Creator: "alice", Timestamp: created},
		Migrations: []MigrationRecord{{FromLayer: LayerPeer, ToLayer: LayerWebVH, Timestamp: migrated}},
		Transfers:  []TransferRecord{{FromAddressOrDID: "a", ToAddress: "b", Timestamp: transferred}},
		ResourceUpdates: []ResourceUpdateRecord{
			{ResourceID: "r1", FromVersion: 1, ToVersion: 2, Timestamp: updated},
		},
	}

	summary := chain.Summarize(LayerBTCO)

	assert.Equal(t, updated, summary.LastActivity)
	assert.Equal(t, 1, summary.MigrationCount)
	assert.Equal(t, 1, summary.TransferCount)
	assert.Equal(t, LayerBTCO, summary.CurrentLayer)
}
