package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikeNeutralizesMetacharacters(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ana", "ana"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLike(tc.in), tc.in)
	}
}
