// Package fqn renders dotted qualified names for definition rows.
package fqn

import (
	"path/filepath"
	"strings"
)

// Compute returns the canonical qualified name for a definition.
// Format: <project>.<rel_path_parts_dotted>.<name>
// Examples:
//   - myproject.internal.widget.Spin
//   - myproject.models.user.User
func Compute(project, relPath, name string) string {
	relPath = strings.TrimSuffix(relPath, filepath.Ext(relPath))
	parts := strings.Split(filepath.ToSlash(relPath), "/")

	// Python packages name the directory, not the __init__ file
	if len(parts) > 0 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	// Same for JS/TS index files
	if len(parts) > 0 && parts[len(parts)-1] == "index" {
		parts = parts[:len(parts)-1]
	}

	all := append([]string{project}, parts...)
	if name != "" {
		all = append(all, name)
	}
	return strings.Join(all, ".")
}

// ModuleQN returns the qualified name of a file itself.
func ModuleQN(project, relPath string) string {
	return Compute(project, relPath, "")
}
