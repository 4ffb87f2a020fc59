package quotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextNumberEmptySet(t *testing.T) {
	assert.Equal(t, "00001", NextNumber(nil))
	assert.Equal(t, "00001", NextNumber([]string{}))
}

func TestNextNumberSkipsUnparseableEntries(t *testing.T) {
	assert.Equal(t, "00008", NextNumber([]string{"00001", "00007", "bad"}))
}

func TestNextNumberAllGarbageFallsBackToOne(t *testing.T) {
	assert.Equal(t, "00001", NextNumber([]string{"abc", "", "x-y"}))
}

func TestNextNumberUsesFirstDigitRun(t *testing.T) {
	// Legacy mixed-format numbers like "ORC-0012" still contribute their
	// numeric part.
	assert.Equal(t, "00013", NextNumber([]string{"ORC-0012", "00003"}))
}

func TestNextNumberGrowsBeyondPadding(t *testing.T) {
	assert.Equal(t, "100000", NextNumber([]string{"99999"}))
}

func TestNextNumberStrictlyGreaterThanAllNumeric(t *testing.T) {
	existing := []string{"00002", "00010", "00005"}
	assert.Equal(t, "00011", NextNumber(existing))
}
