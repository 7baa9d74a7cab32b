package dates

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/patch"
)

func TestParseAcceptsISOShapes(t *testing.T) {
	cases := []struct {
		in   string
		want Date
	}{
		{"2024-01-15", New(2024, time.January, 15)},
		{"2024-01-15T10:00:00Z", New(2024, time.January, 15)},
		{"2024-01-15T10:00:00+00:00", New(2024, time.January, 15)},
		{"2024-01-15T10:00:00.123456Z", New(2024, time.January, 15)},
		{"2024-01-15 10:00:00", New(2024, time.January, 15)},
		{"2024-01-15T10:00", New(2024, time.January, 15)},
		{"2024-01-15T23:30:00-05:00", New(2024, time.January, 15)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse("registrationDate", tc.in)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseZuluMatchesExplicitOffset(t *testing.T) {
	z, err := ParseTime("2024-03-01T08:15:00Z")
	require.NoError(t, err)
	o, err := ParseTime("2024-03-01T08:15:00+00:00")
	require.NoError(t, err)
	assert.True(t, z.Equal(o))
}

func TestParseRejectsNonISO(t *testing.T) {
	for _, in := range []string{"15/01/2024", "2024-13-01", "yesterday", ""} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse("registrationDate", in)
			require.Error(t, err)
			de, ok := dErrors.As(err)
			require.True(t, ok)
			assert.Equal(t, dErrors.CodeBadRequest, de.Code)
			assert.Equal(t, "Invalid registrationDate format", de.Message)
		})
	}
}

func TestParseOptional(t *testing.T) {
	d, err := ParseOptional("expiryDate", "")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptional("expiryDate", "2025-12-31")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2025-12-31", d.String())
}

func TestDateArithmetic(t *testing.T) {
	today := New(2024, time.February, 28)
	assert.Equal(t, "2024-03-01", today.AddDays(2).String())
	assert.Equal(t, 45, today.DaysUntil(today.AddDays(45)))
	assert.Equal(t, -3, today.DaysUntil(today.AddDays(-3)))
	assert.True(t, today.Between(today, today.AddDays(1)))
	assert.False(t, today.AddDays(2).Between(today, today.AddDays(1)))
}

func TestDateJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(struct {
		Due Date `json:"dueDate"`
	}{Due: New(2024, time.June, 30)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dueDate":"2024-06-30"}`, string(raw))

	var out struct {
		Due Date `json:"dueDate"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "2024-06-30", out.Due.String())
}

func TestScanFromDriverTime(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2023, time.July, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-07-04", d.String())
	assert.Error(t, d.Scan(42))
}

func TestAssignFromPatchFields(t *testing.T) {
	due := New(2024, time.January, 1)
	require.NoError(t, Assign(&due, patch.Field[string]{}, "dueDate"))
	assert.Equal(t, "2024-01-01", due.String())

	require.NoError(t, Assign(&due, patch.Val("2024-02-03T23:30:00Z"), "dueDate"))
	assert.Equal(t, "2024-02-03", due.String())

	err := Assign(&due, patch.NullField[string](), "dueDate")
	require.Error(t, err)
	assert.Equal(t, "dueDate cannot be null", err.Error())

	err = Assign(&due, patch.Val("03/02/2024"), "dueDate")
	require.Error(t, err)
	de, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid dueDate format", de.Message)

	end := &due
	require.NoError(t, AssignNullable(&end, patch.NullField[string](), "endDate"))
	assert.Nil(t, end)
	require.NoError(t, AssignNullable(&end, patch.Val("2025-05-05"), "endDate"))
	require.NotNil(t, end)
	assert.Equal(t, "2025-05-05", end.String())
}
