package filesystem

import (
	"path/filepath"
	"strings"
)

// DocumentID converts an absolute file path to a document identifier:
// the path relative to the watched root, slash-separated.
func DocumentID(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// DocumentPath converts a document identifier back to a file path
// under the watched root.
func DocumentPath(root, documentID string) string {
	return filepath.Join(root, filepath.FromSlash(documentID))
}

// DocumentTitle derives a title from a document identifier: the base
// name without its extension.
func DocumentTitle(documentID string) string {
	base := filepath.Base(filepath.FromSlash(documentID))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
