//nolint:testpackage // Testing internal matchers requires same package access
package classifier

import (
	"reflect"
	"testing"
)

func TestExtractTopics_WordBoundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "substring inside a word does not match",
			text: "working with json payloads",
			want: nil,
		},
		{
			name: "js short form matches on boundaries",
			text: "modern js frameworks",
			want: []string{"javascript"},
		},
		{
			name: "multiple topics in table order",
			text: "advanced react api tutorial in python",
			want: []string{"react", "python", "api", "tutorial", "advanced"},
		},
		{
			name: "beginner variants",
			text: "the basics of prompt design",
			want: []string{"beginner"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTopics(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractTopics(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
