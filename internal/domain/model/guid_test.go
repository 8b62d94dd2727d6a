package model

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGlobalIDShape(t *testing.T) {
	id := NewGlobalID()
	assert.Len(t, id, 22)
	assert.True(t, ValidGlobalID(id), "generated id %q must be valid", id)
	for _, c := range id {
		assert.Contains(t, guidChars, string(c))
	}
}

func TestNewGlobalIDFreshness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewGlobalID()
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestCompressUUIDDeterministic(t *testing.T) {
	u := uuid.MustParse("00000000-0000-0000-0000-000000000000")
	assert.Equal(t, strings.Repeat("0", 22), CompressUUID(u))

	// Every byte 0xff fills every sextet.
	var all uuid.UUID
	for i := range all {
		all[i] = 0xff
	}
	got := CompressUUID(all)
	assert.Len(t, got, 22)
	// First byte contributes only 8 bits across two characters: 11 111111.
	assert.Equal(t, "3$", got[:2])
	assert.Equal(t, strings.Repeat("$", 20), got[2:])
}

func TestValidGlobalID(t *testing.T) {
	assert.True(t, ValidGlobalID(CompressUUID(uuid.New())))
	assert.False(t, ValidGlobalID(""))
	assert.False(t, ValidGlobalID("too-short"))
	assert.False(t, ValidGlobalID(strings.Repeat("?", 22)))
	// Leading char above '3' encodes more than 8 bits.
	assert.False(t, ValidGlobalID("Z"+strings.Repeat("0", 21)))
}
