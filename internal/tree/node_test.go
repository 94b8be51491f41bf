package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTree() *Node {
	return dir("/repo",
		dir("/repo/src",
			file("/repo/src/app.ts"),
			file("/repo/src/util.ts"),
		),
		file("/repo/go.mod"),
	)
}

func TestWalk(t *testing.T) {
	t.Run("visits depth first", func(t *testing.T) {
		var visited []string
		sampleTree().Walk(func(n *Node) bool {
			visited = append(visited, n.Path)
			return true
		})

		assert.Equal(t, []string{
			"/repo",
			"/repo/src",
			"/repo/src/app.ts",
			"/repo/src/util.ts",
			"/repo/go.mod",
		}, visited)
	})

	t.Run("stops early", func(t *testing.T) {
		var visited int
		sampleTree().Walk(func(n *Node) bool {
			visited++
			return n.Path != "/repo/src"
		})
		assert.Equal(t, 2, visited)
	})
}

func TestFileCount(t *testing.T) {
	assert.Equal(t, 3, sampleTree().FileCount())
	assert.Equal(t, 0, dir("/empty").FileCount())
}

func TestFind(t *testing.T) {
	root := sampleTree()

	assert.Equal(t, root, root.Find("/repo"))
	assert.Equal(t, "app.ts", root.Find("/repo/src/app.ts").Name)
	assert.Nil(t, root.Find("/repo/missing"))

	var nilNode *Node
	assert.Nil(t, nilNode.Find("/repo"))
}
