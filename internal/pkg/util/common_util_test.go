package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTags(t *testing.T) {
	tags := ExtractTags("Sunset run #Fitness #travel, again #fitness! #")
	assert.Equal(t, []string{"fitness", "travel"}, tags)
}

func TestExtractTagsEmpty(t *testing.T) {
	assert.Empty(t, ExtractTags("no tags here"))
}

func TestMergeTags(t *testing.T) {
	got := MergeTags([]string{"food", "#Travel"}, []string{"travel", " ", "yoga"})
	assert.Equal(t, []string{"food", "travel", "yoga"}, got)
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), WindowStart(now, 7))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), WindowStart(now, 0))
}

func TestEndOfDay(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := EndOfDay(day)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.UTC), end)
	assert.True(t, time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC).Before(end))
}

func TestGetMidnightConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	local := time.Date(2024, 3, 10, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), GetMidnight(local))
}

func TestStrSliceToUInt64Slice(t *testing.T) {
	ids, err := StrSliceToUInt64Slice([]string{"1,2", "3", ""})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)

	_, err = StrSliceToUInt64Slice([]string{"x"})
	assert.Error(t, err)
}
