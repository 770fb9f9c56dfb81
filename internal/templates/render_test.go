package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	v := Vars{
		Title:       "Launch Day",
		Link:        "https://youtu.be/dQw4w9WgXcQ",
		Description: "It is finally out.",
		Author:      "alice",
	}

	out := Render("New video: {title}\n{description}\n{link} (by {author})", v)
	assert.Equal(t, "New video: Launch Day\nIt is finally out.\nhttps://youtu.be/dQw4w9WgXcQ (by alice)", out)
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	out := Render("{title} {tittle}", Vars{Title: "ok"})
	assert.Equal(t, "ok {tittle}", out)
}

func TestParseColor(t *testing.T) {
	n, err := ParseColor("#E62117")
	require.NoError(t, err)
	assert.Equal(t, 0xe62117, n)

	n, err = ParseColor("3498db")
	require.NoError(t, err)
	assert.Equal(t, 0x3498db, n)

	_, err = ParseColor("#fff")
	assert.Error(t, err)

	_, err = ParseColor("#GGGGGG")
	assert.Error(t, err)
}
