package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scheduleJSON = `[{"subject_name":"History","start_time":"2025-01-10 09:00","end_time":"2025-01-10 10:00","topic":"WWII"}]`

func TestExtractRecords_PlainArray(t *testing.T) {
	recs, err := ExtractRecords(scheduleJSON)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	name, ok := recs[0].String("subject_name")
	assert.True(t, ok)
	assert.Equal(t, "History", name)
	topic, _ := recs[0].String("topic")
	assert.Equal(t, "WWII", topic)
}

func TestExtractRecords_FenceStrippingIsIdempotent(t *testing.T) {
	wrapped := []string{
		"```json\n" + scheduleJSON + "\n```",
		"```\n" + scheduleJSON + "\n```",
		"Here you go:\n```json " + scheduleJSON + "```\nEnjoy",
		"```json```json\n" + scheduleJSON + "```",
	}
	want, err := ExtractRecords(scheduleJSON)
	require.NoError(t, err)

	for _, raw := range wrapped {
		got, err := ExtractRecords(raw)
		require.NoError(t, err, raw)
		require.Len(t, got, len(want))
		assert.JSONEq(t, string(want[0].Raw()), string(got[0].Raw()))
		assert.Equal(t, IsolateArray(scheduleJSON), IsolateArray(raw))
	}
}

func TestExtractRecords_SurroundingProse(t *testing.T) {
	raw := "Sure! Here is the plan [draft]:\n" + scheduleJSON + "\nLet me know."
	_, err := ExtractRecords(raw)
	// First '[' belongs to the prose, so the span is not valid JSON.
	assert.ErrorIs(t, err, ErrInvalidOutput)

	raw = "Sure! Here is the plan:\n" + scheduleJSON + "\nLet me know."
	recs, err := ExtractRecords(raw)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestExtractRecords_ObjectWrappedArray(t *testing.T) {
	recs, err := ExtractRecords(`{"meta":{"v":1},"plan":[{"subject_name":"A"}]}`)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	name, _ := recs[0].String("subject_name")
	assert.Equal(t, "A", name)

	// The bracket span covers both members and is not valid JSON.
	_, err = ExtractRecords(`{"first":[{"subject_name":"A"}],"second":[{"subject_name":"B"}]}`)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractRecords_ObjectWithoutArrayIsEmpty(t *testing.T) {
	_, err := ExtractRecords(`{"message":"no plan today"}`)
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestFirstArrayMember_DocumentOrder(t *testing.T) {
	arr, err := firstArrayMember([]byte(`{"z":1,"b":[2],"a":[1]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `[2]`, string(arr))

	arr, err = firstArrayMember([]byte(`{"z":1}`))
	require.NoError(t, err)
	assert.Nil(t, arr)
}

func TestExtractRecords_EmptyArrayFails(t *testing.T) {
	_, err := ExtractRecords("```json\n[]\n```")
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestExtractRecords_UnparseableFails(t *testing.T) {
	for _, raw := range []string{"", "I cannot help with that.", "[{'subject_name': 'Math'}]", `[{"a":1},]`} {
		_, err := ExtractRecords(raw)
		assert.ErrorIs(t, err, ErrInvalidOutput, "%q", raw)
	}
}

func TestExtractRecords_RecordWithoutFieldsStillExtracted(t *testing.T) {
	recs, err := ExtractRecords("```json\n[{\"a\":1}]\n```")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].IsObject())
	assert.False(t, recs[0].Has("subject_name"))
	_, ok := recs[0].String("subject_name")
	assert.False(t, ok)
}

func TestRecordString_WrongTypes(t *testing.T) {
	recs, err := ExtractRecords(`[{"subject_name":42,"topic":null}, "loose", 7]`)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	_, ok := recs[0].String("subject_name")
	assert.False(t, ok)
	assert.True(t, recs[0].Has("topic"))
	_, ok = recs[0].String("topic")
	assert.False(t, ok)
	assert.False(t, recs[1].IsObject())
	_, ok = recs[2].String("anything")
	assert.False(t, ok)
}

func TestExtractRecords_RepairOnlyWhenRequested(t *testing.T) {
	raw := "[{\"q\":\"x\", // model comment\n \"score\": .5}]"

	_, err := ExtractRecords(raw)
	assert.ErrorIs(t, err, ErrInvalidOutput)

	recs, err := ExtractRecords(raw, WithRepair())
	require.NoError(t, err)
	var v struct {
		Q     string  `json:"q"`
		Score float64 `json:"score"`
	}
	require.NoError(t, recs[0].Decode(&v))
	assert.Equal(t, 0.5, v.Score)
}

func TestRequireFields(t *testing.T) {
	recs, err := ExtractRecords(`[{"a":1,"b":0},{"a":1},{"a":1,"b":null},"loose",{"a":null,"b":2}]`)
	require.NoError(t, err)

	kept, rejected := RequireFields(recs, "a", "b")
	require.Len(t, kept, 1)
	assert.JSONEq(t, `{"a":1,"b":0}`, string(kept[0].Raw()))
	require.Len(t, rejected, 4)
	assert.ErrorIs(t, rejected[0], ErrInvalidOutput)
	assert.ErrorContains(t, rejected[0], "record 1")
	assert.ErrorContains(t, rejected[0], "missing b")

	assert.True(t, recs[2].Has("b"))
	assert.False(t, recs[2].Present("b"))
}

func TestDecodeRecords_DropsInvalid(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}
	recs, err := ExtractRecords(`[{"name":"a"},{"name":""},{"name":3},{"name":"d"}]`)
	require.NoError(t, err)

	items, rejected := DecodeRecords[item](recs, func(i item) error {
		if i.Name == "" {
			return errors.New("name required")
		}
		return nil
	})
	assert.Equal(t, []item{{"a"}, {"d"}}, items)
	require.Len(t, rejected, 2)
	assert.ErrorIs(t, rejected[0], ErrInvalidOutput)
}

func TestStripCodeFences_Prose(t *testing.T) {
	assert.Equal(t, "<ul><li>a</li></ul>", StripCodeFences("```html\n<ul><li>a</li></ul>\n```\n"))
	assert.Equal(t, "plain", StripCodeFences("  plain  "))
}

func TestStripJSONComments_PreservesStrings(t *testing.T) {
	in := `{"url":"http://x/y", /* c */ "a":1 // tail
}`
	assert.JSONEq(t, `{"url":"http://x/y","a":1}`, stripJSONComments(in))
}

func TestNormalizeLeadingDecimalNumbers(t *testing.T) {
	assert.Equal(t, `{"a":0.5,"b":-0.3,"c":"x.5"}`, normalizeLeadingDecimalNumbers(`{"a":.5,"b":-.3,"c":"x.5"}`))
}
