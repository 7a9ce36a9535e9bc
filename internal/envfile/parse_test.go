package envfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaultEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{name: "compact json", data: `{"version":1,"defaultEnvironment":"dev"}`, want: "dev"},
		{name: "pretty json", data: "{\n  \"version\": 1,\n  \"defaultEnvironment\": \"staging\"\n}\n", want: "staging"},
		{name: "missing field", data: `{"version":1}`, wantErr: true},
		{name: "empty field", data: `{"defaultEnvironment":"  "}`, wantErr: true},
		{name: "malformed", data: `{"defaultEnvironment": [`, wantErr: true},
		{name: "empty file", data: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseDefaultEnvironment([]byte(tt.data))
			if tt.wantErr {
				assert.False(t, result.OK())
				assert.Error(t, result.Failure)
				assert.Empty(t, result.Environment)
				return
			}
			require.True(t, result.OK(), "unexpected failure: %v", result.Failure)
			assert.Equal(t, tt.want, result.Environment)
		})
	}
}

func TestParseDefaultEnvironment_MissingFieldIsSentinel(t *testing.T) {
	result := ParseDefaultEnvironment([]byte(`{"version":1}`))
	assert.ErrorIs(t, result.Failure, ErrNoDefaultEnvironment)
}

func TestParseSettings_SkipsBlankAndComments(t *testing.T) {
	input := strings.Join([]string{
		"",
		"   ",
		"\t",
		"# comment",
		"   # indented comment",
		"#KEY=value",
		"not an assignment",
		"=novalue",
		"A=1",
	}, "\n")

	entries, err := ParseSettings(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "A", Value: "1"}}, entries)
}

func TestParseSettings_TrimsAroundSeparator(t *testing.T) {
	input := strings.Join([]string{
		"A=1",
		"B = 2",
		"  C=   3   ",
		"D\t=\tfour words\t",
		"E=",
		"F = x=y=z",
	}, "\n")

	entries, err := ParseSettings(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "A", Value: "1"},
		{Name: "B", Value: "2"},
		{Name: "C", Value: "3"},
		{Name: "D", Value: "four words"},
		{Name: "E", Value: ""},
		{Name: "F", Value: "x=y=z"},
	}, entries)

	for _, e := range entries {
		assert.Equal(t, strings.TrimSpace(e.Value), e.Value)
		assert.Equal(t, strings.TrimSpace(e.Name), e.Name)
	}
}

func TestParseSettings_Unquotes(t *testing.T) {
	input := strings.Join([]string{
		`A="quoted"`,
		`B='single'`,
		`C="mismatched'`,
		`D=""`,
		`E="`,
		`F=" padded "`,
	}, "\n")

	entries, err := ParseSettings(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "A", Value: "quoted"},
		{Name: "B", Value: "single"},
		{Name: "C", Value: `"mismatched'`},
		{Name: "D", Value: ""},
		{Name: "E", Value: `"`},
		{Name: "F", Value: "padded"},
	}, entries)
}

func TestParseSettings_CRLF(t *testing.T) {
	entries, err := ParseSettings(strings.NewReader("A=1\r\n\r\nB=2\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "A", Value: "1"}, {Name: "B", Value: "2"}}, entries)
}
