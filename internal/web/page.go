package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/SyrineLarbi/Daily-planner/internal/model"
	"github.com/SyrineLarbi/Daily-planner/internal/render"
	"github.com/SyrineLarbi/Daily-planner/internal/richtext"
	"github.com/SyrineLarbi/Daily-planner/internal/store"
)

// DateFormat is the page header date layout, e.g. "Monday, Jan 2"
const DateFormat = "Monday, Jan 2"

// backdrops are the CSS classes the page cycles through
var backdrops = []string{"backdrop-nebula", "backdrop-aurora", "backdrop-dusk", "backdrop-starfield"}

var pageFuncs = template.FuncMap{
	"join": strings.Join,
}

type pageCard struct {
	render.Card

	// Description after sanitizing; safe to emit as markup
	SafeDescription template.HTML
	// Icon is the image source; data URIs are passed through only for images
	Icon template.URL
}

type pageData struct {
	Date         string
	Cards        []pageCard
	Slots        []string
	DefaultColor string
	DeletePrompt string
	BackdropMS   int64
	Backdrops    []string
}

// Page handles GET /
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cards := s.board(false).Cards
	s.mu.Unlock()

	data := pageData{
		Date:         s.opts.Now().Format(DateFormat),
		Cards:        make([]pageCard, 0, len(cards)),
		Slots:        model.TimeSlots(),
		DefaultColor: s.opts.DefaultColor,
		DeletePrompt: store.DeletePrompt,
		BackdropMS:   s.opts.BackdropInterval.Milliseconds(),
		Backdrops:    backdrops,
	}
	for _, card := range cards {
		data.Cards = append(data.Cards, pageCard{
			Card:            card,
			SafeDescription: template.HTML(richtext.Sanitize(card.Description)),
			Icon:            iconURL(card.Image),
		})
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// iconURL trusts image data URIs and the placeholder, nothing else
func iconURL(image string) template.URL {
	if strings.HasPrefix(image, "data:image/") {
		return template.URL(image)
	}
	return template.URL(model.PlaceholderImage)
}
