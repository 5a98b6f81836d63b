package filtertree

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// enumerableCache is implemented by NodeCache backends that can produce a
// point-in-time snapshot of their contents (memcache.Cache and
// lrucache.Cache both do). It is an optional capability, type-asserted for
// here rather than folded into NodeCache itself, so backends that can't
// cheaply enumerate (or don't want to) aren't forced to support it.
type enumerableCache[O comparable, I any] interface {
	Entries() map[any]*Node[O, I]
}

// Snapshot renders the portion of ft's decision tree that has materialized
// so far as a treeprint.Tree, for diagnostics and tests. Uncached subtrees
// (collapsed nodes) render as a single leaf, since there is nothing
// persistent to show beneath them. A cached node whose backend doesn't
// implement enumerableCache renders as a branch holding one placeholder
// node instead of its children.
func Snapshot[O comparable, I any](ft *FilterTree[O, I]) treeprint.Tree {
	root := treeprint.New()
	renderNode(root, ft.root, "root")
	return root
}

// Sprint is a convenience wrapper around Snapshot that returns the rendered
// tree as a string.
func Sprint[O comparable, I any](ft *FilterTree[O, I]) string {
	return Snapshot(ft).String()
}

func renderNode[O comparable, I any](into treeprint.Tree, n *Node[O, I], label string) {
	desc := fmt.Sprintf("%s (candidates=%d)", label, n.frame.Len())
	if n.leaf {
		into.AddNode(desc + " leaf")
		return
	}
	if n.cache == nil {
		into.AddNode(desc + " collapsed")
		return
	}
	branch := into.AddBranch(desc + " cached")
	enumerable, ok := n.cache.(enumerableCache[O, I])
	if !ok {
		branch.AddNode("<cache contents not enumerable>")
		return
	}
	for key, child := range enumerable.Entries() {
		renderNode(branch, child, fmt.Sprintf("fingerprint=%v", key))
	}
}
