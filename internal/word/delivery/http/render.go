package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageSearch    = "search"
	pageFavorites = "favorites"
	pageQuiz      = "quiz"
	pageError     = "error"
)

const formatErrorMessage = `⚠️ CSV 파일 형식 오류! 쉼표가 들어간 뜻은 반드시 "로 묶어야 합니다.`

type menuItem struct {
	Key   string
	Title string
	Path  string
}

var menu = []menuItem{
	{Key: pageSearch, Title: "단어 검색", Path: "/search"},
	{Key: pageFavorites, Title: "즐겨찾기", Path: "/favorites"},
	{Key: pageQuiz, Title: "퀴즈", Path: "/quiz"},
}

// flash kinds map onto the stylesheet classes in layout.html
const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashWarning = "warning"
	flashError   = "error"
)

type pageData struct {
	Menu      []menuItem
	Active    string
	Flash     string
	FlashKind string

	// search
	Query   string
	Results []domain.Entry

	// favorites
	Favorites []domain.Entry

	// quiz
	QuizSize       int
	NotEnoughWords bool
	Questions      []domain.Entry
	Report         *domain.Report

	// error
	Error  string
	Detail string
}

func newPage(active string) *pageData {
	return &pageData{Menu: menu, Active: active, QuizSize: domain.QuizSize}
}

func (p *pageData) flash(kind, msg string) {
	p.Flash = msg
	p.FlashKind = kind
}

func parseTemplates() map[string]*template.Template {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{pageSearch, pageFavorites, pageQuiz, pageError} {
		pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		))
	}
	return pages
}

// render executes the page into a buffer first so a template failure
// still produces a clean 500 instead of a half-written body.
func (h *WordbookHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data *pageData) {
	var buf bytes.Buffer
	if err := h.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error(r.Context()).Err(err).Str("page", name).Msg("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderError shows the failure page with msg. Format errors in the word
// file always get the guidance about quoting meanings that contain commas.
func (h *WordbookHandler) renderError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	page := newPage("")
	page.Error = msg
	page.Detail = err.Error()
	if errors.Is(err, domain.ErrFormat) {
		page.Error = formatErrorMessage
	}

	logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg(msg)
	h.render(w, r, http.StatusInternalServerError, pageError, page)
}
