package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalValue_Scalar(t *testing.T) {
	v, err := UnmarshalValue([]byte(`"acme corp"`))
	require.NoError(t, err)
	assert.Equal(t, Scalar("acme corp"), v)
}

func TestUnmarshalValue_NumberBecomesScalar(t *testing.T) {
	v, err := UnmarshalValue([]byte(`0.0001`))
	require.NoError(t, err)
	assert.Equal(t, Scalar("0.0001"), v, "numeric precision must survive decoding")
}

func TestUnmarshalValue_MultiSelect(t *testing.T) {
	v, err := UnmarshalValue([]byte(`["red","blue"]`))
	require.NoError(t, err)
	assert.Equal(t, MultiSelect{"red", "blue"}, v)
}

func TestUnmarshalValue_Group(t *testing.T) {
	v, err := UnmarshalValue([]byte(`[{"name":"jane doe","cash":"1000000"},{"name":"ACME LLC","type":"corporation"}]`))
	require.NoError(t, err)

	g, ok := v.(Group)
	require.True(t, ok, "array of records must decode to Group")
	require.Len(t, g, 2)
	assert.Equal(t, "jane doe", g[0].Field("name"))
	assert.Equal(t, "corporation", g[1].Field("type"))
	assert.Equal(t, "", g[0].Field("type"), "absent field reads as empty")
}

func TestUnmarshalValue_GroupNumericFieldStringified(t *testing.T) {
	v, err := UnmarshalValue([]byte(`[{"name":"jane","cash":1000000}]`))
	require.NoError(t, err)

	g, ok := v.(Group)
	require.True(t, ok)
	assert.Equal(t, "1000000", g[0].Field("cash"))
}

func TestUnmarshalValue_EmptyArrayIsMultiSelect(t *testing.T) {
	v, err := UnmarshalValue([]byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, MultiSelect{}, v)
}

func TestUnmarshalValue_RejectsNestedRecords(t *testing.T) {
	_, err := UnmarshalValue([]byte(`[{"name":{"first":"jane"}}]`))
	assert.Error(t, err)
}

func TestUnmarshalValue_RejectsBareObject(t *testing.T) {
	_, err := UnmarshalValue([]byte(`{"name":"jane"}`))
	assert.Error(t, err)
}

func TestValue_RoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		value Value
	}{
		{"scalar", Scalar("Delaware")},
		{"multi select", MultiSelect{"a", "b", "c"}},
		{"group", Group{{"name": "jane doe", "type": "individual"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := MarshalValue(tc.value)
			require.NoError(t, err)

			back, err := UnmarshalValue(data)
			require.NoError(t, err)
			assert.Equal(t, tc.value, back)
		})
	}
}

func TestSurveyResponse_JSONRoundTrip(t *testing.T) {
	in := SurveyResponse{
		QuestionID: "founders",
		Value:      Group{{"name": "jane doe", "cash": "1000000"}},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out SurveyResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestGroupItem_CloneIsIndependent(t *testing.T) {
	orig := GroupItem{"name": "jane"}
	clone := orig.Clone()
	clone["name"] = "john"

	assert.Equal(t, "jane", orig["name"], "clone must not mutate the source record")
}
