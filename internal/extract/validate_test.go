package extract

import (
	"strings"
	"testing"
)

func TestValidText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"empty", "", false},
		{"too short", "lease tenant", false},
		{"no keywords", strings.Repeat("lorem ipsum dolor sit amet ", 5), false},
		{"single keyword", "This document mentions rent. " + strings.Repeat("filler words here ", 5), false},
		{"valid lease", "This lease agreement between the landlord and tenant covers monthly rent and the security deposit for the premises.", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidText(tc.text); got != tc.expected {
				t.Fatalf("expected %v got %v", tc.expected, got)
			}
		})
	}
}
