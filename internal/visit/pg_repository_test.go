package visit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeEscaper(t *testing.T) {
	assert.Equal(t, `\%`, likeEscaper.Replace("%"))
	assert.Equal(t, `\_`, likeEscaper.Replace("_"))
	assert.Equal(t, `\\`, likeEscaper.Replace(`\`))
	assert.Equal(t, "naulu", likeEscaper.Replace("naulu"))
}
