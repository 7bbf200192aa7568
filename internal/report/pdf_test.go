package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-calc-backend/internal/domain"
)

func TestNewEstimate(t *testing.T) {
	c := domain.NewDefaultPoolCatalog()
	sel := domain.Selections{
		domain.GroupPoolModel: {"classic"},
		domain.GroupPoolSize:  {"medium"},
		domain.GroupFeatures:  {"spa", "unknown"},
	}

	est := NewEstimate(c, sel)

	assert.NotEmpty(t, est.Reference)
	assert.Len(t, est.ShortReference(), 8)
	assert.Equal(t, domain.Finalize(c.ComputeSnapshot(sel)), est.Result)

	lines := est.SelectionLines()
	require.Len(t, lines, 3)
	assert.Equal(t, SelectionLine{Group: "Pool Model", Options: []string{"Classic Rectangle"}}, lines[0])
	assert.Equal(t, SelectionLine{Group: "Pool Features", Options: []string{"Attached Spa"}}, lines[2])
}

func TestGeneratePDF(t *testing.T) {
	c := domain.NewDefaultPoolCatalog()
	est := NewEstimate(c, domain.Selections{
		domain.GroupPoolModel: {"infinity"},
		domain.GroupPoolSize:  {"xlarge"},
		domain.GroupServices:  {"decking", "fencing"},
	})

	out, err := GeneratePDF(est)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePDF_EmptySelections(t *testing.T) {
	est := NewEstimate(domain.NewDefaultPoolCatalog(), domain.Selections{})
	assert.Equal(t, int64(7000), est.Result.Breakdown.Total)

	out, err := GeneratePDF(est)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
