package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbo-tools/dadismatch/pkg/matcher"
	"github.com/vbo-tools/dadismatch/pkg/records"
)

func strptr(s string) *string { return &s }

func TestMerge(t *testing.T) {
	recs := []records.SourceRecord{
		record("VBO_3", "Texel", "Sheep"),
		ignored(record("VBO_1", "Angus", "Cattle")),
		record("VBO_2", "Angus", "Cattle"),
		record("VBO_4", "Merino", "Sheep"),
	}
	matches := map[string]*string{
		"VBO_3":    strptr("TB010"),
		"VBO_2":    strptr("TB001"),
		"VBO_4":    nil,
		"VBO_GONE": strptr("TB999"),
	}

	out := matcher.Merge(recs, matches)
	require.Len(t, out, len(recs))

	for i, a := range out {
		assert.Equal(t, recs[i], a.SourceRecord, "row %d keeps its record", i)
	}
	assert.Equal(t, "TB010", out[0].TransboundaryIDValue())
	assert.Nil(t, out[1].TransboundaryID)
	assert.Equal(t, "TB001", out[2].TransboundaryIDValue())
	assert.Nil(t, out[3].TransboundaryID)

	*matches["VBO_3"] = "changed"
	assert.Equal(t, "TB010", out[0].TransboundaryIDValue(), "merged ids do not alias the match map")
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, matcher.Merge(nil, nil))
	out := matcher.Merge([]records.SourceRecord{record("VBO_1", "Angus", "Cattle")}, nil)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].TransboundaryID)
}
