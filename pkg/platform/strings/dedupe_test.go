package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"only separators", " , ,", nil},
		{"single", "kafka:9092", []string{"kafka:9092"}},
		{"trims and keeps order", " k2:9092 ,k1:9092", []string{"k2:9092", "k1:9092"}},
		{"drops repeats", "k1:9092,k1:9092, k2:9092", []string{"k1:9092", "k2:9092"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input))
		})
	}
}
