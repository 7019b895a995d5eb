package catalog

import (
	"github.com/bastiangx/songserve/pkg/dataset"
	"github.com/bastiangx/songserve/pkg/prefix"
	"github.com/bastiangx/songserve/pkg/ranking"
	"github.com/bastiangx/songserve/pkg/similar"
	"github.com/charmbracelet/log"
)

// Catalog owns one of each structure. They share titles but never reference each other.
type Catalog struct {
	index    *prefix.Index
	hotCache *prefix.HotCache
	ranked   *ranking.Catalog
	graph    *similar.Graph
}

// New creates an empty catalog. cacheSize bounds the prefix result cache, 0 disables it.
func New(cacheSize int) *Catalog {
	return &Catalog{
		index:    prefix.NewIndex(),
		hotCache: prefix.NewHotCache(cacheSize),
		ranked:   ranking.NewCatalog(),
		graph:    similar.NewGraph(),
	}
}

// Seed inserts every song into the index and the ranking, and every edge into the graph.
func (c *Catalog) Seed(ds *dataset.Dataset) {
	if ds == nil {
		return
	}
	for _, s := range ds.Songs {
		c.AddSong(s.Title, s.Popularity)
	}
	for _, e := range ds.Edges {
		c.AddRelation(e.A, e.B)
	}
	log.Debugf("Seeded catalog: %d songs, %d edges", len(ds.Songs), len(ds.Edges))
}

// AddSong makes title searchable and ranked.
func (c *Catalog) AddSong(title string, popularity int) {
	c.index.Insert(title)
	c.hotCache.Invalidate(title)
	c.ranked.Add(title, popularity)
}

// AddRelation records that a and b are similar.
func (c *Catalog) AddRelation(a, b string) {
	c.graph.AddEdge(a, b)
}

func (c *Catalog) Search(prefix string) []string {
	if cached, ok := c.hotCache.Get(prefix); ok {
		return cached
	}
	results := c.index.Query(prefix)
	c.hotCache.Put(prefix, results)
	return results
}

func (c *Catalog) Top(k int) []ranking.Song {
	return c.ranked.TopK(k)
}

func (c *Catalog) Similar(title string) []string {
	return c.graph.Neighbors(title)
}

func (c *Catalog) Stats() map[string]int {
	stats := map[string]int{
		"titles":      c.index.Len(),
		"trieNodes":   c.index.Nodes(),
		"rankedSongs": c.ranked.Len(),
		"graphTitles": c.graph.Len(),
		"graphEdges":  c.graph.Edges(),
	}
	for k, v := range c.hotCache.Stats() {
		stats[k] = v
	}
	return stats
}
