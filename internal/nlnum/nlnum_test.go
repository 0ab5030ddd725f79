package nlnum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartpantry/internal/nlnum"
)

func TestFirstInt(t *testing.T) {
	type testCase struct {
		name   string
		input  string
		want   int
		wantOK bool
	}

	tests := []testCase{
		{
			name:   "BareInteger",
			input:  "14",
			want:   14,
			wantOK: true,
		},
		{
			name:   "IntegerWithProse",
			input:  "approximately 400 days",
			want:   400,
			wantOK: true,
		},
		{
			name:   "RangeTakesFirst",
			input:  "7-10 days",
			want:   7,
			wantOK: true,
		},
		{
			name:   "LeadingWhitespace",
			input:  "  30 days, refrigerated",
			want:   30,
			wantOK: true,
		},
		{
			name:   "SignIgnored",
			input:  "-5",
			want:   5,
			wantOK: true,
		},
		{
			name:   "NoDigits",
			input:  "N/A",
			wantOK: false,
		},
		{
			name:   "Empty",
			input:  "",
			wantOK: false,
		},
		{
			name:   "DigitRunOverflows",
			input:  "99999999999999999999 days",
			wantOK: false,
		},
		{
			name:   "DigitsAtEnd",
			input:  "it lasts about 21",
			want:   21,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nlnum.FirstInt(tt.input)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
