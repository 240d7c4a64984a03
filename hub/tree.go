package hub

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

type node struct {
	name     string
	isFile   bool
	children map[string]*node
	file     *File
}

func newNode(name string, isFile bool) *node {
	return &node{
		name:     name,
		isFile:   isFile,
		children: make(map[string]*node),
	}
}

func buildTree(files []File) *node {
	root := newNode("", false)

	for i := range files {
		parts := strings.Split(files[i].Path, "/")
		current := root

		for j, part := range parts {
			isFile := j == len(parts)-1
			if next, exists := current.children[part]; exists {
				current = next
			} else {
				next := newNode(part, isFile)
				if isFile {
					next.file = &files[i]
				}
				current.children[part] = next
				current = next
			}
		}
	}

	return root
}

// PrintTree renders files as a directory tree with sizes, used to show the
// download plan before fetching starts.
func PrintTree(w io.Writer, files []File) {
	printNode(w, buildTree(files), "", true)
}

func printNode(w io.Writer, n *node, prefix string, isLast bool) {
	if n.name != "" {
		marker := "├── "
		if isLast {
			marker = "└── "
		}

		size := ""
		if n.isFile && n.file != nil {
			size = FormatSize(n.file.ByteSize())
			if n.file.Lfs != nil {
				size += " (LFS)"
			}
		}

		fmt.Fprintf(w, "%s%s%s %s\n", prefix, marker, n.name, size)
	}

	var children []*node
	for _, child := range n.children {
		children = append(children, child)
	}
	sort.Slice(children, func(i, j int) bool {
		// Directories come before files
		if children[i].isFile != children[j].isFile {
			return !children[i].isFile
		}
		return children[i].name < children[j].name
	})

	for i, child := range children {
		newPrefix := prefix
		if n.name != "" {
			if isLast {
				newPrefix += "    "
			} else {
				newPrefix += "│   "
			}
		}
		printNode(w, child, newPrefix, i == len(children)-1)
	}
}

// FormatSize renders a byte count in binary units.
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
