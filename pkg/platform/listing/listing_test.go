package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "registrar/pkg/domain-errors"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		query string
		want  Page
	}{
		{"", Page{1, 10}},
		{"page=3&pageSize=20", Page{3, 20}},
		{"page=0&pageSize=-5", Page{1, 10}},
		{"page=abc&pageSize=x", Page{1, 10}},
		{"pageSize=1000", Page{1, 100}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ParsePage(q))
		})
	}
}

func TestSliceAndResultInvariant(t *testing.T) {
	all := make([]int, 23)
	for i := range all {
		all[i] = i
	}
	for _, tc := range []struct {
		page, size, wantLen, wantPages int
	}{
		{1, 10, 10, 3},
		{3, 10, 3, 3},
		{4, 10, 0, 3},
		{1, 100, 23, 1},
		{2, 23, 0, 1},
	} {
		p := Page{Page: tc.page, PageSize: tc.size}
		res := NewResult(Slice(all, p), len(all), p)
		assert.Len(t, res.Items, tc.wantLen)
		assert.Equal(t, tc.wantPages, res.TotalPages)
		assert.Equal(t, 23, res.Total)
	}
}

func TestNewResultEmpty(t *testing.T) {
	res := NewResult[string](nil, 0, Page{1, 10})
	assert.NotNil(t, res.Items)
	assert.Equal(t, 0, res.TotalPages)
}

func TestFilterParsers(t *testing.T) {
	q := url.Values{
		"isCompliant":  {"TRUE"},
		"isPublic":     {"yes"},
		"days":         {"45"},
		"limit":        {"ten"},
		"dueBefore":    {"2024-05-01"},
		"dateFrom":     {"01/05/2024"},
		"organization": {"not-a-uuid"},
	}

	b, err := Bool(q, "isCompliant")
	require.NoError(t, err)
	assert.True(t, *b)

	_, err = Bool(q, "isPublic")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	n, err := IntOr(q, "days", 30)
	require.NoError(t, err)
	assert.Equal(t, 45, n)

	n, err = IntOr(q, "missing", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	_, err = Int(q, "limit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")

	d, err := Date(q, "dueBefore")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", d.String())

	_, err = Date(q, "dateFrom")
	assert.Error(t, err)

	_, err = UUID(q, "organization")
	assert.Error(t, err)

	assert.Nil(t, String(q, "search"))
}
