// Package catalog bundles the prefix index, the popularity ranking and the similarity graph behind one owner.
package catalog

import "github.com/bastiangx/songserve/pkg/ranking"

// ICatalog is what the CLI and the IPC server need from a catalog
type ICatalog interface {
	// Search returns titles starting with prefix, in no particular order
	Search(prefix string) []string

	// Top returns up to k songs by descending popularity
	Top(k int) []ranking.Song

	// Similar returns the recorded neighbors of title
	Similar(title string) []string

	// Stats returns counters about the loaded data
	Stats() map[string]int
}
