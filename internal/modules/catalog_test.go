package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() *Catalog {
	return New([]string{
		"command.moderation_module",
		"command.server_module",
		"command.youtube_module",
		Privileged,
		// duplicates from multiple commands in one module collapse
		"command.moderation_module",
	})
}

func TestCatalogAll(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, []string{
		Privileged,
		"command.moderation_module",
		"command.server_module",
		"command.youtube_module",
	}, c.All())
}

func TestCatalogToggleableExcludesPrivileged(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, []string{
		"command.moderation_module",
		"command.server_module",
		"command.youtube_module",
	}, c.Toggleable())
	assert.NotContains(t, c.Toggleable(), Privileged)
}

func TestCatalogIsValid(t *testing.T) {
	c := testCatalog()
	assert.True(t, c.IsValid("command.youtube_module"))
	assert.True(t, c.IsValid(Privileged))
	assert.False(t, c.IsValid("command.nonexistent_module"))
	assert.False(t, c.IsValid("youtube"))
}

func TestDisplayNameQualifyRoundTrip(t *testing.T) {
	c := testCatalog()
	for _, id := range c.All() {
		assert.Equal(t, id, Qualify(DisplayName(id)), "round trip for %s", id)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "youtube", DisplayName("command.youtube_module"))
	assert.Equal(t, "management", DisplayName(Privileged))
}

func TestQualifyNormalizesInput(t *testing.T) {
	assert.Equal(t, "command.youtube_module", Qualify("YouTube"))
	assert.Equal(t, "command.youtube_module", Qualify("  youtube "))
}

func TestSuggest(t *testing.T) {
	c := testCatalog()

	assert.Equal(t, []string{"moderation", "server", "youtube"}, c.Suggest("", 25))
	assert.Equal(t, []string{"youtube"}, c.Suggest("You", 25))
	assert.Equal(t, []string{"moderation", "server"}, c.Suggest("er", 25))
	assert.Empty(t, c.Suggest("management", 25))
	assert.Len(t, c.Suggest("", 2), 2)
}
