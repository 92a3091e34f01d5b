package utils

import (
	"strings"
	"testing"
)

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth float64
		expected []string
	}{
		{
			name:     "短文本不换行",
			input:    "short",
			maxWidth: 1000,
			expected: []string{"short"},
		},
		{
			name:     "在空格处断行",
			input:    "hello world foo",
			maxWidth: 66,
			expected: []string{"hello world", "foo"},
		},
		{
			name:     "超长单词强制断行",
			input:    "abcdefghijkl",
			maxWidth: 30,
			expected: []string{"abcde", "fghij", "kl"},
		},
		{
			name:     "空文本",
			input:    "",
			maxWidth: 100,
			expected: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.input, tt.maxWidth, nil)
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") {
				t.Errorf("WrapText(%q, %.0f) = %q, expected %q", tt.input, tt.maxWidth, got, tt.expected)
			}
		})
	}
}

// TestWrapText_LinesFit 每一行都不超过最大宽度
func TestWrapText_LinesFit(t *testing.T) {
	input := "Who can join? Students aged 12-18 from any school in the region, no prior experience needed."
	for _, line := range WrapText(input, 120, nil) {
		if w := DebugTextWidth(line); w > 120 {
			t.Errorf("line %q is %.0f px wide, want <= 120", line, w)
		}
	}
}

func TestDebugTextWidth(t *testing.T) {
	if w := DebugTextWidth("abc"); w != 18 {
		t.Errorf("Expected 18, got %f", w)
	}
}
