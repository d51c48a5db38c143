package persistence

import (
	"testing"

	"github.com/aretw0/survey/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Empty(t *testing.T) {
	for _, in := range []string{"", "  ", "null"} {
		subs, err := Decode([]byte(in))
		require.NoError(t, err, "input %q", in)
		assert.Empty(t, subs)
	}
}

func TestDecode_StringWrapped(t *testing.T) {
	subs, err := Decode([]byte(`"[[{\"questionId\":2,\"answer\":\"x\"}]]"`))
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, 2, subs[0].Answers[0].QuestionID)
	assert.Equal(t, "x", subs[0].Answers[0].Value.String())
}

func TestDecode_Rejects(t *testing.T) {
	for _, in := range []string{`{}`, `[1,2]`, `"not json"`} {
		_, err := Decode([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestEncode_Nil(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	data, err = Encode([]domain.Submission{{}})
	require.NoError(t, err)
	assert.Equal(t, `[[]]`, string(data))
}
