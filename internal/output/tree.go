package output

import (
	"slices"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// noteColumn is where file notes start.
	noteColumn = 40
)

type treeNode struct {
	name     string
	note     string
	children map[string]*treeNode
}

func (n *treeNode) isDir() bool {
	return n.children != nil
}

func (n *treeNode) child(name string, dir bool) *treeNode {
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name}
		n.children[name] = c
	}
	if dir && c.children == nil {
		c.children = map[string]*treeNode{}
	}
	return c
}

// sorted lists directories first, then files, each alphabetically.
func (n *treeNode) sorted() []*treeNode {
	out := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *treeNode) int {
		if a.isDir() != b.isDir() {
			if a.isDir() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.name, b.name)
	})
	return out
}

// RenderFileTree renders files as a tree under rootName. Files maps slash
// separated relative paths to an optional note printed beside the file.
func RenderFileTree(rootName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &treeNode{name: rootName, children: map[string]*treeNode{}}
	for p, note := range files {
		parts := strings.Split(strings.Trim(p, "/"), "/")
		current := root
		for i, part := range parts {
			last := i == len(parts)-1
			current = current.child(part, !last)
			if last {
				current.note = note
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(StyleBold.Render(strings.TrimSuffix(rootName, "/") + "/"))
	sb.WriteString("\n")
	writeChildren(&sb, root, "")
	return sb.String()
}

func writeChildren(sb *strings.Builder, node *treeNode, prefix string) {
	children := node.sorted()
	for i, c := range children {
		connector, indent := treeEdge, treeVert
		if i == len(children)-1 {
			connector, indent = treeLast, treeSpace
		}

		line := prefix + connector + c.name
		if c.isDir() {
			line += "/"
		}
		if c.note != "" {
			pad := max(noteColumn-len([]rune(line)), 2)
			line += strings.Repeat(" ", pad) + StyleDim.Render(c.note)
		}
		sb.WriteString(line)
		sb.WriteString("\n")

		if c.isDir() {
			writeChildren(sb, c, prefix+indent)
		}
	}
}

// RenderSimpleTree renders a tree of paths without notes.
func RenderSimpleTree(rootName string, paths []string) string {
	files := make(map[string]string, len(paths))
	for _, p := range paths {
		files[p] = ""
	}
	return RenderFileTree(rootName, files)
}
