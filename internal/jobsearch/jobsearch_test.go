package jobsearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobassist/internal/model"
)

func ids(offers []model.SearchOffer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.ID)
	}
	return out
}

func TestCatalogue_Search(t *testing.T) {
	c := NewCatalogue()

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"no filters", Query{}, []string{"1", "2", "3", "4"}},
		{"text in title", Query{Text: "développeur"}, []string{"1", "2"}},
		{"text in description", Query{Text: "POSTGRESQL"}, []string{"1"}},
		{"text in company", Query{Text: "global"}, []string{"3"}},
		{"location substring", Query{Location: "lyon"}, []string{"2"}},
		{"location country", Query{Location: "France"}, []string{"1", "2", "3", "4"}},
		{"contract type ignores case", Query{ContractType: "cdi"}, []string{"1", "3"}},
		{"contract type is exact", Query{ContractType: "CD"}, []string{}},
		{"combined", Query{Text: "projet", Location: "Marseille", ContractType: "CDI"}, []string{"3"}},
		{"no match", Query{Text: "astronaute"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Search(context.Background(), tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestCatalogue_CustomOffers(t *testing.T) {
	c := NewCatalogue(model.SearchOffer{ID: "x", Title: "Ingénieur SRE", Location: "Nantes"})

	got, err := c.Search(context.Background(), Query{Text: "sre"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ids(got))
}

func TestCatalogue_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCatalogue().Search(ctx, Query{})
	assert.ErrorIs(t, err, context.Canceled)
}
