package pagegist_test

import (
	"testing"

	"github.com/fwojciec/pagegist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	t.Run("parses every known mode", func(t *testing.T) {
		t.Parallel()

		for _, m := range pagegist.Modes() {
			got, err := pagegist.ParseMode(string(m))
			require.NoError(t, err)
			assert.Equal(t, m, got)
		}
	})

	t.Run("rejects unknown modes", func(t *testing.T) {
		t.Parallel()

		_, err := pagegist.ParseMode("pirate")
		assert.Equal(t, pagegist.EINVALID, pagegist.ErrorCode(err))
	})
}

func TestDefaultMode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pagegist.Mode("like_i_am_5"), pagegist.DefaultMode)
}

func TestSystemPrompt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Summarize the following content.", pagegist.SystemPrompt(pagegist.ModeDefault))
	assert.Equal(t, pagegist.SystemPrompt(pagegist.ModeDefault), pagegist.SystemPrompt("unknown"))
	assert.Contains(t, pagegist.SystemPrompt(pagegist.ModeLikeIAm5), "five-year-old")
}
