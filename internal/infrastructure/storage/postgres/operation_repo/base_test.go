package operation_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockmaster/internal/domain"
	"stockmaster/internal/domain/operations/receipt"
)

func TestDerefListPreservesOrderAndCounts(t *testing.T) {
	first := &receipt.Receipt{}
	first.Reference = "RCP-1"
	second := &receipt.Receipt{}
	second.Reference = "RCP-2"

	res := &domain.ListResult[*receipt.Receipt]{
		Items:      []*receipt.Receipt{first, second},
		TotalCount: 7,
		Limit:      2,
		Offset:     4,
	}

	out := derefList(res)
	assert.Equal(t, int64(7), out.TotalCount)
	assert.Equal(t, 2, out.Limit)
	assert.Equal(t, 4, out.Offset)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, "RCP-1", out.Items[0].Reference)
	assert.Equal(t, "RCP-2", out.Items[1].Reference)
}

func TestDerefListEmpty(t *testing.T) {
	out := derefList(&domain.ListResult[*receipt.Receipt]{Limit: 50})
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.Equal(t, 50, out.Limit)
}
