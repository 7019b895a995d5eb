package server

import (
	"bytes"
	"testing"

	"github.com/bastiangx/songserve/pkg/catalog"
	"github.com/bastiangx/songserve/pkg/config"
	"github.com/bastiangx/songserve/pkg/dataset"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func intPtr(n int) *int { return &n }

// roundTrip feeds requests to a fresh server and returns a decoder positioned after the ready message.
func roundTrip(t *testing.T, cfg *config.Config, requests ...any) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}

	c := catalog.New(16)
	c.Seed(dataset.Default())

	var out bytes.Buffer
	srv := NewServer(c, cfg, "", &in, &out)
	require.NoError(t, srv.Start())

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	require.Equal(t, "ready", ready.Status)
	return dec
}

func TestSearch(t *testing.T) {
	dec := roundTrip(t, nil,
		Request{ID: "q1", Action: ActionSearch, Prefix: "B"},
		Request{ID: "q2", Action: ActionSearch, Prefix: "Nope"},
	)

	var first SearchResponse
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "q1", first.ID)
	assert.ElementsMatch(t, []string{"Blinding Lights", "Believer"}, first.Titles)
	assert.Equal(t, 2, first.Count)

	var second SearchResponse
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "q2", second.ID)
	assert.Empty(t, second.Titles)
	assert.Equal(t, 0, second.Count)
}

func TestTop(t *testing.T) {
	dec := roundTrip(t, nil,
		Request{ID: "default", Action: ActionTop},
		Request{ID: "zero", Action: ActionTop, K: intPtr(0)},
		Request{ID: "all", Action: ActionTop, K: intPtr(100)},
	)

	var top TopResponse
	require.NoError(t, dec.Decode(&top))
	assert.Equal(t, []RankedSong{
		{Title: "Shape of You", Popularity: 95, Rank: 1},
		{Title: "Blinding Lights", Popularity: 90, Rank: 2},
		{Title: "Despacito", Popularity: 85, Rank: 3},
	}, top.Songs)

	var zero TopResponse
	require.NoError(t, dec.Decode(&zero))
	assert.Equal(t, "zero", zero.ID)
	assert.Empty(t, zero.Songs)

	var all TopResponse
	require.NoError(t, dec.Decode(&all))
	assert.Equal(t, 7, all.Count)
	assert.Equal(t, "Havana", all.Songs[6].Title)
}

func TestTopClampsToConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxTopK = 2

	dec := roundTrip(t, cfg, Request{ID: "q", Action: ActionTop, K: intPtr(5)})

	var top TopResponse
	require.NoError(t, dec.Decode(&top))
	assert.Equal(t, 2, top.Count)
}

func TestSimilar(t *testing.T) {
	dec := roundTrip(t, nil,
		Request{ID: "a", Action: ActionSimilar, Title: "Perfect"},
		Request{ID: "b", Action: ActionSimilar, Title: "Havana"},
	)

	var known SimilarResponse
	require.NoError(t, dec.Decode(&known))
	assert.Equal(t, []string{"Shape of You"}, known.Neighbors)

	var unknown SimilarResponse
	require.NoError(t, dec.Decode(&unknown))
	assert.Equal(t, "Havana", unknown.Title)
	assert.Empty(t, unknown.Neighbors)
}

func TestErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxPrefix = 4

	dec := roundTrip(t, cfg,
		Request{ID: "long", Action: ActionSearch, Prefix: "Shape of You"},
		Request{ID: "neg", Action: ActionTop, K: intPtr(-1)},
		Request{ID: "what", Action: "dance"},
		"not a request",
	)

	for _, id := range []string{"long", "neg", "what", ""} {
		var e CompletionError
		require.NoError(t, dec.Decode(&e))
		assert.Equal(t, id, e.ID)
		assert.Equal(t, 400, e.Code)
		assert.NotEmpty(t, e.Error)
	}
}

func TestHealthAndStats(t *testing.T) {
	dec := roundTrip(t, nil,
		Request{ID: "h", Action: ActionHealth},
		Request{ID: "s", Action: ActionStats},
	)

	var health StatusResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, "ok", health.Status)

	var stats StatsResponse
	require.NoError(t, dec.Decode(&stats))
	assert.Equal(t, 7, stats.Stats["titles"])
	assert.Equal(t, 5, stats.Stats["graphEdges"])
}

func TestUpdateConfig(t *testing.T) {
	srv := NewServer(catalog.New(0), nil, "", &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, 60, srv.currentConfig().Server.MaxPrefix)

	cfg := config.DefaultConfig()
	cfg.Server.MaxPrefix = 5
	srv.UpdateConfig(cfg)
	assert.Equal(t, 5, srv.currentConfig().Server.MaxPrefix)
}
