// Package tree builds and renders the indented directory tree of the packed paths.
package tree

import (
	"sort"
	"strings"
)

const (
	pathSegmentSeparator = "/"
	indentUnit           = "  "
	directorySuffix      = "/"
)

// Node is one entry of the directory tree. The root node is synthetic and unnamed.
type Node struct {
	Name        string
	IsDirectory bool
	Children    []*Node
}

// Build inserts every slash-separated path into a fresh tree. Intermediate segments
// become directories; a node first inserted as a file becomes a directory once another
// path uses it as a parent.
func Build(paths []string) *Node {
	root := &Node{IsDirectory: true}
	for _, path := range paths {
		currentNode := root
		for _, segment := range strings.Split(path, pathSegmentSeparator) {
			if segment == "" {
				continue
			}
			currentNode = currentNode.child(segment)
		}
	}
	return root
}

func (node *Node) child(name string) *Node {
	for _, existingChild := range node.Children {
		if existingChild.Name == name {
			return existingChild
		}
	}
	newChild := &Node{Name: name}
	node.Children = append(node.Children, newChild)
	node.IsDirectory = true
	return newChild
}

// SortChildren orders the children of node recursively: directories before files,
// then by name.
func SortChildren(node *Node) {
	sort.SliceStable(node.Children, func(leftIndex, rightIndex int) bool {
		left, right := node.Children[leftIndex], node.Children[rightIndex]
		if left.IsDirectory != right.IsDirectory {
			return left.IsDirectory
		}
		return left.Name < right.Name
	})
	for _, childNode := range node.Children {
		SortChildren(childNode)
	}
}

// Render writes the children of node one per line, indented by depth, with directories
// suffixed by "/". The node itself is not printed.
func Render(node *Node, depth int) string {
	SortChildren(node)
	var builder strings.Builder
	renderChildren(&builder, node, depth)
	return builder.String()
}

func renderChildren(builder *strings.Builder, node *Node, depth int) {
	for _, childNode := range node.Children {
		builder.WriteString(strings.Repeat(indentUnit, depth))
		builder.WriteString(childNode.Name)
		if childNode.IsDirectory {
			builder.WriteString(directorySuffix)
		}
		builder.WriteString("\n")
		renderChildren(builder, childNode, depth+1)
	}
}

// RenderPaths renders the tree of paths without the trailing newline.
func RenderPaths(paths []string) string {
	return strings.TrimSuffix(Render(Build(paths), 0), "\n")
}
