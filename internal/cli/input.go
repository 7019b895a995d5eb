// Package cli runs the interactive catalog walkthrough: prefix search, top songs, then similar songs.
package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/songserve/internal/logger"
	"github.com/bastiangx/songserve/internal/utils"
	"github.com/bastiangx/songserve/pkg/catalog"
	"github.com/charmbracelet/log"
)

// InputHandler reads answers from a reader and renders catalog results to a writer.
type InputHandler struct {
	catalog catalog.ICatalog
	topK    int
	reader  *bufio.Reader
	out     *log.Logger
	render  *renderer
}

// NewInputHandler wires a catalog to the given input and output.
// topK is how many popular songs the walkthrough shows.
func NewInputHandler(c catalog.ICatalog, topK int, in io.Reader, out io.Writer, color bool) *InputHandler {
	plain := logger.NewPlain(out, "")
	return &InputHandler{
		catalog: c,
		topK:    topK,
		reader:  bufio.NewReader(in),
		out:     plain,
		render:  newRenderer(plain, out, color),
	}
}

// Start runs the walkthrough once and returns.
// End of input counts as an empty answer; only read failures are returned.
func (h *InputHandler) Start() error {
	h.out.Print("Enter song prefix: ")
	line, err := h.readLine()
	if err != nil {
		return err
	}
	query := firstField(line)
	h.handlePrefix(query)

	h.render.top(h.catalog.Top(h.topK))

	h.out.Print("")
	h.out.Print("Enter a song to find similar ones: ")
	choice, err := h.readLine()
	if err != nil {
		return err
	}
	h.handleSimilar(strings.TrimSpace(choice))
	return nil
}

func (h *InputHandler) handlePrefix(prefix string) {
	if err := utils.CheckInput(prefix, 0); err != nil {
		log.Warnf("Ignoring prefix %q: %v", prefix, err)
		h.render.matches(prefix, nil)
		return
	}
	if !utils.IsSingleByte(prefix) {
		log.Debug("Non-ASCII prefix is matched byte by byte", "prefix", prefix)
	}

	start := time.Now()
	results := h.catalog.Search(prefix)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	h.render.matches(prefix, results)
}

func (h *InputHandler) handleSimilar(title string) {
	if err := utils.CheckInput(title, 0); err != nil {
		log.Warnf("Ignoring title %q: %v", title, err)
		h.render.similar(title, nil)
		return
	}
	h.render.similar(title, h.catalog.Similar(title))
}

// readLine returns the next line without its terminator. EOF yields whatever was read.
func (h *InputHandler) readLine() (string, error) {
	line, err := h.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// firstField mimics reading a single whitespace-delimited token.
func firstField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
