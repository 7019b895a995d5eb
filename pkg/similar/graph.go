// Package similar records undirected "sounds like" relations between song titles.
package similar

// Graph maps a title to its neighbors in insertion order.
// Edges are never deduplicated and titles are compared byte for byte.
type Graph struct {
	adj   map[string][]string
	edges int
}

func NewGraph() *Graph {
	return &Graph{
		adj: make(map[string][]string),
	}
}

// AddEdge links a and b in both directions.
// When a == b the title is appended to its own list twice, once per direction.
func (g *Graph) AddEdge(a, b string) {
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
	g.edges++
}

// Neighbors returns a copy of the neighbors of title.
// Unknown titles give an empty slice and are not added to the graph.
func (g *Graph) Neighbors(title string) []string {
	neighbors, ok := g.adj[title]
	if !ok {
		return []string{}
	}
	return append([]string{}, neighbors...)
}

// Len returns the number of titles with at least one edge.
func (g *Graph) Len() int {
	return len(g.adj)
}

// Edges returns how many times AddEdge was called.
func (g *Graph) Edges() int {
	return g.edges
}
