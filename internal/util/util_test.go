// internal/util/util_test.go
package util

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateWidth(t *testing.T) {
	t.Parallel()

	if got := TruncateWidth("hello", 10); got != "hello" {
		t.Fatalf("TruncateWidth without truncation = %q", got)
	}

	for _, in := range []string{"helloworld", "전학 절차는 어떻게 되나요?"} {
		got := TruncateWidth(in, 7)
		if !strings.HasSuffix(got, "…") {
			t.Fatalf("TruncateWidth(%q,7)=%q, want ellipsis", in, got)
		}
		if w := runewidth.StringWidth(got); w > 7 {
			t.Fatalf("TruncateWidth(%q,7)=%q has width %d", in, got, w)
		}
	}
}

func TestWrapToWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{
			name:  "wrap words",
			text:  "one two three four",
			width: 10,
			want:  "one two\nthree four",
		},
		{
			name:  "long word split",
			text:  "supercalifragilisticexpialidocious",
			width: 5,
			want: strings.Join([]string{
				"super",
				"calif",
				"ragil",
				"istic",
				"expia",
				"lidoc",
				"ious",
			}, "\n"),
		},
		{
			name:  "hangul counts double",
			text:  "전학 절차는",
			width: 6,
			want:  "전학\n절차는",
		},
		{
			name:  "wide word split",
			text:  "가나다라",
			width: 3,
			want:  "가\n나\n다\n라",
		},
		{
			name:  "preserve blank lines",
			text:  "para one\n\npara two",
			width: 20,
			want:  "para one\n\npara two",
		},
		{
			name:  "non-positive width no-op",
			text:  "no wrap",
			width: 0,
			want:  "no wrap",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WrapToWidth(tt.text, tt.width); got != tt.want {
				t.Fatalf("WrapToWidth(%q,%d)=%q want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestMax(t *testing.T) {
	t.Parallel()

	if got := Max(3, 7); got != 7 {
		t.Fatalf("Max(3,7)=%d want 7", got)
	}
	if got := Max(9, -1); got != 9 {
		t.Fatalf("Max(9,-1)=%d want 9", got)
	}
}
