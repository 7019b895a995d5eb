// Package ranking keeps songs in a max-heap by popularity and answers top-K queries.
package ranking

import "container/heap"

// Song is one ranked entry. Higher popularity ranks first.
type Song struct {
	Title      string
	Popularity int
}

// songHeap orders songs by popularity, highest at the root.
// Ties have no secondary key.
type songHeap []Song

func (h songHeap) Len() int           { return len(h) }
func (h songHeap) Less(i, j int) bool { return h[i].Popularity > h[j].Popularity }
func (h songHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *songHeap) Push(x any) {
	*h = append(*h, x.(Song))
}

func (h *songHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Catalog holds every added song. The same title may be added more than once.
type Catalog struct {
	songs songHeap
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

// Add records a new entry.
func (c *Catalog) Add(title string, popularity int) {
	heap.Push(&c.songs, Song{Title: title, Popularity: popularity})
}

// TopK returns up to k songs in descending popularity without consuming them.
// It pops from a copy of the heap, so repeated calls agree.
func (c *Catalog) TopK(k int) []Song {
	snapshot := make(songHeap, len(c.songs))
	copy(snapshot, c.songs)
	return popN(&snapshot, k)
}

// Drain is the consuming form of TopK: returned songs are removed from the catalog.
func (c *Catalog) Drain(k int) []Song {
	return popN(&c.songs, k)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.songs)
}

func popN(h *songHeap, k int) []Song {
	if k > h.Len() {
		k = h.Len()
	}
	if k <= 0 {
		return []Song{}
	}

	top := make([]Song, 0, k)
	for i := 0; i < k; i++ {
		top = append(top, heap.Pop(h).(Song))
	}
	return top
}
