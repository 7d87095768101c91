package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Description alignment column
	descriptionColumn = 30
)

// TreeNode represents a node in the file tree.
type TreeNode struct {
	Name        string
	Description string
	IsDir       bool
	Children    []*TreeNode
}

// RenderFileTree renders the generated project layout with descriptions
// aligned at column 30. Files maps slash-separated paths relative to the
// project root to their descriptions; a trailing slash marks a directory.
func RenderFileTree(projectName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	// Build tree structure
	root := &TreeNode{
		Name:     projectName,
		IsDir:    true,
		Children: []*TreeNode{},
	}

	for path, desc := range files {
		slashed := filepath.ToSlash(path)
		isDir := strings.HasSuffix(slashed, "/")
		parts := strings.Split(strings.TrimSuffix(slashed, "/"), "/")
		current := root

		for i, part := range parts {
			isLast := i == len(parts)-1

			// Find or create child
			var child *TreeNode
			for _, c := range current.Children {
				if c.Name == part {
					child = c
					break
				}
			}

			if child == nil {
				child = &TreeNode{
					Name:     part,
					IsDir:    !isLast || isDir,
					Children: []*TreeNode{},
				}
				current.Children = append(current.Children, child)
			}

			if isLast {
				child.Description = desc
			}

			current = child
		}
	}

	// Sort children alphabetically (directories first)
	sortTree(root)

	// Render tree
	var sb strings.Builder
	renderNode(&sb, root, "", true, true)
	return sb.String()
}

// sortTree recursively sorts tree nodes (directories first, then alphabetically).
func sortTree(node *TreeNode) {
	if len(node.Children) == 0 {
		return
	}

	sort.Slice(node.Children, func(i, j int) bool {
		// Directories before files
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return node.Children[i].IsDir
		}
		// Alphabetical
		return node.Children[i].Name < node.Children[j].Name
	})

	for _, child := range node.Children {
		sortTree(child)
	}
}

// renderNode recursively renders a tree node with proper indentation and styling.
func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool) {
	if isRoot {
		// Root node
		name := node.Name + "/"
		sb.WriteString(StyleSummary.Render(name))
		sb.WriteString("\n")
	} else {
		// Child node
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		name := node.Name
		if node.IsDir {
			name += "/"
		}

		line := prefix + connector + name

		// Add description if present, aligned to column 30
		if node.Description != "" {
			padding := descriptionColumn - len(line)
			if padding < 2 {
				padding = 2
			}
			line += strings.Repeat(" ", padding)
			line += StyleMuted.Render(node.Description)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	// Render children
	for i, child := range node.Children {
		childIsLast := i == len(node.Children)-1

		var childPrefix string
		if isRoot {
			childPrefix = ""
		} else {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}

		renderNode(sb, child, childPrefix, false, childIsLast)
	}
}
