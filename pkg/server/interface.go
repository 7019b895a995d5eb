/*
Package server implements msgpack IPC for the song catalog.

Clients write one msgpack map per request to stdin and read one msgpack map per response from stdout.
On start the server writes a status message:

	{"id": "", "status": "ready"}

Every request carries an ID, echoed back, and an action:

	{"id": "q1", "action": "search", "p": "Clo"}
	{"id": "q2", "action": "top", "k": 3}
	{"id": "q3", "action": "similar", "title": "Faded"}
	{"id": "q4", "action": "stats"}
	{"id": "q5", "action": "health"}

Search results come back unordered, top results by descending popularity with a 1-based rank:

	{"id": "q1", "s": ["Closer", "Close"], "c": 2, "t": 12}
	{"id": "q2", "s": [{"w": "Shape of You", "p": 95, "r": 1}], "c": 1, "t": 4}

"t" is the handling time in microseconds. Failures use CompletionError with an HTTP-like code.
A "top" request without "k" uses the configured cli.top_k, and k is clamped to server.max_top_k.
*/
package server

const (
	ActionSearch  = "search"
	ActionTop     = "top"
	ActionSimilar = "similar"
	ActionStats   = "stats"
	ActionHealth  = "health"
)

// Request is the single inbound message shape
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Prefix string `msgpack:"p,omitempty"`
	Title  string `msgpack:"title,omitempty"`
	K      *int   `msgpack:"k,omitempty"`
}

// SearchResponse lists titles matching a prefix
type SearchResponse struct {
	ID        string   `msgpack:"id"`
	Titles    []string `msgpack:"s"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// RankedSong is one entry of a top response
type RankedSong struct {
	Title      string `msgpack:"w"`
	Popularity int    `msgpack:"p"`
	Rank       uint16 `msgpack:"r"`
}

// TopResponse lists the most popular songs
type TopResponse struct {
	ID        string       `msgpack:"id"`
	Songs     []RankedSong `msgpack:"s"`
	Count     int          `msgpack:"c"`
	TimeTaken int64        `msgpack:"t"`
}

// SimilarResponse lists the neighbors of a title in insertion order
type SimilarResponse struct {
	ID        string   `msgpack:"id"`
	Title     string   `msgpack:"title"`
	Neighbors []string `msgpack:"n"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// StatsResponse carries catalog counters
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// StatusResponse is used for ready and health messages
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
