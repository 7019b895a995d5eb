package server

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bastiangx/songserve/internal/utils"
	"github.com/bastiangx/songserve/pkg/catalog"
	"github.com/bastiangx/songserve/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for catalog queries
type Server struct {
	catalog      catalog.ICatalog
	config       *config.Config
	configPath   string
	mu           sync.RWMutex
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	requestCount int
}

// NewServer creates a server reading requests from in and writing responses to out.
func NewServer(c catalog.ICatalog, cfg *config.Config, configPath string, in io.Reader, out io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		catalog:    c,
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(in),
		encoder:    msgpack.NewEncoder(out),
	}
}

// UpdateConfig swaps the active config. Safe to call from the config watcher.
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	log.Debug("Server config updated",
		"maxPrefix", cfg.Server.MaxPrefix,
		"maxTopK", cfg.Server.MaxTopK)
}

func (s *Server) currentConfig() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Start sends the ready status and serves requests until the input ends.
func (s *Server) Start() error {
	log.Debug("Starting server", "config", config.GetActiveConfigPath(s.configPath))

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return err
		}
		s.requestCount++
		s.handleRequest(raw)
	}
}

// handleRequest decodes one message and dispatches on its action
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "Invalid msgpack request", 400)
		return
	}

	switch req.Action {
	case ActionSearch:
		s.handleSearch(req)
	case ActionTop:
		s.handleTop(req)
	case ActionSimilar:
		s.handleSimilar(req)
	case ActionStats:
		s.send(StatsResponse{ID: req.ID, Stats: s.catalog.Stats()})
	case ActionHealth:
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleSearch(req Request) {
	cfg := s.currentConfig()
	if err := utils.CheckInput(req.Prefix, cfg.Server.MaxPrefix); err != nil {
		log.Debug("Rejected prefix", "id", req.ID, "err", err)
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	start := time.Now()
	titles := s.catalog.Search(req.Prefix)
	elapsed := time.Since(start)

	s.send(SearchResponse{
		ID:        req.ID,
		Titles:    titles,
		Count:     len(titles),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleTop(req Request) {
	cfg := s.currentConfig()

	k := cfg.CLI.TopK
	if req.K != nil {
		k = *req.K
	}
	if k < 0 {
		s.sendError(req.ID, fmt.Sprintf("k must not be negative, got %d", k), 400)
		return
	}
	if cfg.Server.MaxTopK > 0 && k > cfg.Server.MaxTopK {
		log.Debugf("Clamping k from %d to %d", k, cfg.Server.MaxTopK)
		k = cfg.Server.MaxTopK
	}

	start := time.Now()
	songs := s.catalog.Top(k)
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(songs))
	ranked := make([]RankedSong, len(songs))
	for i, song := range songs {
		ranked[i] = RankedSong{Title: song.Title, Popularity: song.Popularity, Rank: ranks[i]}
	}

	s.send(TopResponse{
		ID:        req.ID,
		Songs:     ranked,
		Count:     len(ranked),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleSimilar(req Request) {
	cfg := s.currentConfig()
	if err := utils.CheckInput(req.Title, cfg.Server.MaxPrefix); err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	start := time.Now()
	neighbors := s.catalog.Similar(req.Title)
	elapsed := time.Since(start)

	s.send(SimilarResponse{
		ID:        req.ID,
		Title:     req.Title,
		Neighbors: neighbors,
		Count:     len(neighbors),
		TimeTaken: elapsed.Microseconds(),
	})
}

// send encodes a response value onto the output stream
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(CompletionError{ID: id, Error: message, Code: code})
}
