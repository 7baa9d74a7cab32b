package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "registrar/pkg/domain-errors"
)

type body struct {
	Name    Field[string] `json:"name"`
	Website Field[string] `json:"website"`
	Members Field[int]    `json:"membershipCount"`
}

func TestFieldDistinguishesAbsentNullAndSet(t *testing.T) {
	var b body
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Dockworkers","website":null}`), &b))

	assert.True(t, b.Name.Present())
	assert.Equal(t, "Dockworkers", b.Name.Value)
	assert.True(t, b.Website.Set)
	assert.True(t, b.Website.Null)
	assert.False(t, b.Members.Set)
}

func TestFieldRejectsWrongType(t *testing.T) {
	var b body
	err := json.Unmarshal([]byte(`{"membershipCount":"many"}`), &b)
	assert.Error(t, err)
}

func TestAssign(t *testing.T) {
	name := "old"
	require.NoError(t, Assign(&name, Field[string]{}, "organizationName"))
	assert.Equal(t, "old", name)

	require.NoError(t, Assign(&name, Val("new"), "organizationName"))
	assert.Equal(t, "new", name)

	err := Assign(&name, NullField[string](), "organizationName")
	require.Error(t, err)
	assert.Equal(t, "organizationName cannot be null", err.(*dErrors.Error).Message)
	assert.Equal(t, "new", name)
}

func TestAssignNullable(t *testing.T) {
	site := "https://example.org"
	dst := &site

	AssignNullable(&dst, Field[string]{})
	require.NotNil(t, dst)

	AssignNullable(&dst, NullField[string]())
	assert.Nil(t, dst)

	AssignNullable(&dst, Val("https://union.example"))
	require.NotNil(t, dst)
	assert.Equal(t, "https://union.example", *dst)
}

func TestCheckRequiredReportsFirstMissing(t *testing.T) {
	err := CheckRequired(
		Req("registrationNumber", Val("IO-07")),
		Req("organizationName", Val("")),
		Req("status", Field[string]{}),
	)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	assert.Equal(t, "organizationName is required", err.(*dErrors.Error).Message)

	assert.NoError(t, CheckRequired(Req("votesReceived", Val(0))))
}
