package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeEscaper(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "%", want: `\%`},
		{in: "_", want: `\_`},
		{in: `\`, want: `\\`},
		{in: "100%", want: `100\%`},
		{in: "a_b%c", want: `a\_b\%c`},
		{in: "jane", want: "jane"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, likeEscaper.Replace(tc.in), "input %q", tc.in)
	}
}
