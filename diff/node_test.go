package diff_test

import (
	"testing"

	"github.com/nicolagi/treemanifest/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sameAs(t *testing.T, a, b diff.Node) bool {
	t.Helper()
	same, err := a.SameAs(b)
	require.NoError(t, err)
	return same
}

func TestByteNodeSameAs(t *testing.T) {
	a := diff.ByteNode("some text")
	b := diff.ByteNode("other text")
	assert.False(t, sameAs(t, a, b))
	assert.False(t, sameAs(t, b, a))
	assert.True(t, sameAs(t, a, a))
	assert.True(t, sameAs(t, b, b))
	assert.True(t, sameAs(t, a, diff.ByteNode("some text")))
	assert.True(t, sameAs(t, diff.ByteNode("some text"), a))
	assert.False(t, sameAs(t, a, nil))
	assert.False(t, sameAs(t, a, diff.StringNode("some text")))
}

func TestByteNodeContent(t *testing.T) {
	node := diff.ByteNode("some text")
	content, err := node.Content()
	assert.Equal(t, "some text", content)
	assert.Nil(t, err)
}

func TestStringNodeSameAs(t *testing.T) {
	a := diff.StringNode("some text")
	b := diff.StringNode("other text")
	assert.False(t, sameAs(t, a, b))
	assert.False(t, sameAs(t, b, a))
	assert.True(t, sameAs(t, a, a))
	assert.True(t, sameAs(t, b, b))
	assert.True(t, sameAs(t, a, diff.StringNode("some text")))
	assert.True(t, sameAs(t, diff.StringNode("some text"), a))
	assert.False(t, sameAs(t, a, nil))
	assert.False(t, sameAs(t, a, diff.ByteNode{}))
}

func TestStringNodeContent(t *testing.T) {
	node := diff.StringNode("some text")
	content, err := node.Content()
	assert.Equal(t, "some text", content)
	assert.Nil(t, err)
}
