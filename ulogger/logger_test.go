package ulogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultsToInfo(t *testing.T) {
	l := New("test-service", LevelInfo, false)
	assert.Equal(t, LevelInfo, l.LogLevel())
}

func TestWithKeepsParentLevel(t *testing.T) {
	l := New("test-service", LevelDebug, false)
	child := l.With(map[string]interface{}{"assetId": "did:peer:abc"})
	assert.Equal(t, LevelDebug, child.LogLevel())
}

func TestNopDiscardsOutput(t *testing.T) {
	l := Nop()
	l.Infof("this should not panic: %d", 1)
}
