package cli

import (
	"fmt"
	"io"

	"github.com/bastiangx/songserve/internal/utils"
	"github.com/bastiangx/songserve/pkg/ranking"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// renderer prints results through a plain charm logger, optionally highlighting titles.
type renderer struct {
	out     *log.Logger
	title   lipgloss.Style
	heading lipgloss.Style
	color   bool
}

func newRenderer(out *log.Logger, w io.Writer, color bool) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		out:     out,
		title:   r.NewStyle().Foreground(lipgloss.Color("75")),
		heading: r.NewStyle().Bold(true),
		color:   color,
	}
}

func (r *renderer) styleTitle(s string) string {
	if !r.color {
		return s
	}
	return r.title.Render(s)
}

func (r *renderer) styleHeading(s string) string {
	if !r.color {
		return s
	}
	return r.heading.Render(s)
}

func (r *renderer) matches(prefix string, titles []string) {
	r.out.Print("")
	r.out.Print(r.styleHeading(fmt.Sprintf("Songs matching '%s':", prefix)))
	if len(titles) == 0 {
		r.out.Print("No matches found.")
		return
	}
	for _, t := range titles {
		r.out.Print(r.styleTitle(t))
	}
}

func (r *renderer) top(songs []ranking.Song) {
	r.out.Print("")
	r.out.Print(r.styleHeading("Top Recommended Songs:"))
	for _, s := range songs {
		r.out.Printf("%s (Popularity: %s)", r.styleTitle(s.Title), utils.FormatWithCommas(s.Popularity))
	}
}

func (r *renderer) similar(title string, neighbors []string) {
	if len(neighbors) == 0 {
		r.out.Print("No similar songs found.")
		return
	}
	r.out.Print(r.styleHeading(fmt.Sprintf("Similar Songs to '%s':", title)))
	for _, n := range neighbors {
		r.out.Print(r.styleTitle(n))
	}
}
