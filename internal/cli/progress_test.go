package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReader_PassesThrough(t *testing.T) {
	tests := []struct {
		name string
		size int64
	}{
		{name: "known size", size: 26},
		{name: "unknown size", size: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			src := strings.NewReader("abcdefghijklmnopqrstuvwxyz")

			pr := NewProgressReader(src, &out, tt.size, "Reading")
			data, err := io.ReadAll(pr)
			require.NoError(t, err)
			pr.Finish()

			assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", string(data))
		})
	}
}
