package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "plain english title",
			title: "Year End Tax Checklist",
			want:  "year-end-tax-checklist",
		},
		{
			name:  "punctuation stripped",
			title: "VAT: what's new in 2026?!",
			want:  "vat-whats-new-in-2026",
		},
		{
			name:  "hangul preserved",
			title: "연말정산 가이드 2026",
			want:  "연말정산-가이드-2026",
		},
		{
			name:  "whitespace runs collapsed",
			title: "  Income \t tax \n basics  ",
			want:  "income-tax-basics",
		},
		{
			name:  "symbols only falls back",
			title: "!!! ***",
			want:  "post",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Base(tt.title))
		})
	}
}

func TestBaseTruncation(t *testing.T) {
	long := strings.Repeat("tax advice ", 30)

	got := Base(long)

	assert.LessOrEqual(t, len([]rune(got)), 100)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.NotEmpty(t, got)
}

func TestMakeDeterministic(t *testing.T) {
	a := Make("Quarterly VAT filing", 1700000000000)
	b := Make("Quarterly VAT filing", 1700000000000)

	assert.Equal(t, a, b)
	assert.Equal(t, "quarterly-vat-filing-1700000000000", a)
}

func TestMakeURLSafe(t *testing.T) {
	got := Make("Deductions & crédits — 100% legal", 42)

	assert.NotEmpty(t, got)
	for _, r := range got {
		safe := (r >= 'a' && r <= 'z') ||
			(r >= '0' && r <= '9') ||
			r == '-' ||
			(r >= 0xAC00 && r <= 0xD7A3)
		assert.Truef(t, safe, "unexpected rune %q in slug %q", r, got)
	}
}
