package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.String())
		})
	}
}

func TestSeverity_Text(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var got Severity
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}

	var s Severity
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name string
		i    Issue
		want string
	}{
		{
			name: "error with field and value",
			i: Issue{
				Severity: SeverityError,
				Field:    "setaf",
				Message:  "name out of order",
				Value:    "am",
			},
			want: `error: field "setaf": name out of order (got am)`,
		},
		{
			name: "warning without field",
			i: Issue{
				Severity: SeverityWarning,
				Message:  "table is empty",
			},
			want: "warning: table is empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.i.Error())
		})
	}
}

func TestIssue_With(t *testing.T) {
	base := Issue{Severity: SeverityError, Message: "m", Context: map[string]string{"a": "1"}}
	got := base.With("index", "3")

	assert.Equal(t, map[string]string{"a": "1", "index": "3"}, got.Context)
	assert.Equal(t, map[string]string{"a": "1"}, base.Context, "original must not change")
}

func TestResult_Helpers(t *testing.T) {
	r := &Result{}

	assert.False(t, r.HasErrors())
	assert.NoError(t, r.Err())

	r.AddError("f1", "m1", "v1")
	assert.True(t, r.HasErrors())
	assert.Len(t, r.Errors(), 1)
	assert.EqualError(t, r.Err(), `error: field "f1": m1 (got v1)`)

	assert.False(t, r.HasWarnings())
	r.AddWarning("f2", "m2", "v2")
	assert.True(t, r.HasWarnings())
	assert.Len(t, r.Warnings(), 1)

	r.AddInfo("f3", "m3", "v3")
	assert.Len(t, r.Infos(), 1)
	assert.Len(t, r.Issues, 3)
}

func TestResult_NilSafety(t *testing.T) {
	var r *Result
	assert.False(t, r.HasErrors())
	assert.False(t, r.HasWarnings())
	assert.Nil(t, r.Errors())
	assert.Nil(t, r.Warnings())
	assert.NoError(t, r.Err())
}
