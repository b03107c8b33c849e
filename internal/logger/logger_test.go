package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, out []byte)
	}{
		{
			name:   "json",
			format: "JSON",
			check: func(t *testing.T, out []byte) {
				var rec map[string]any
				require.NoError(t, json.Unmarshal(out, &rec))
				assert.Equal(t, "reading served", rec["msg"])
				assert.Equal(t, "daily_single", rec["type"])
			},
		},
		{
			name:   "text",
			format: "",
			check: func(t *testing.T, out []byte) {
				assert.Contains(t, string(out), `msg="reading served"`)
				assert.Contains(t, string(out), "type=daily_single")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := NewWithWriter(&buf, 0, tt.format)
			l.Info("reading served", "type", "daily_single")
			tt.check(t, buf.Bytes())
		})
	}
}

func TestNewWithWriter_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewWithWriter(&buf, 4, "text")
	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.With("user", "u1").Warn("kept")
	assert.Contains(t, buf.String(), "user=u1")
}
