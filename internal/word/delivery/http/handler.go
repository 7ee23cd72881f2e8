package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/internal/word/usecase/command"
	"github.com/tair/wordbook/internal/word/usecase/query"
	"github.com/tair/wordbook/pkg/logger"
)

const (
	msgLoadFailed = "단어 파일을 불러올 수 없습니다."
	msgSaveFailed = "즐겨찾기를 저장할 수 없습니다."
	msgQuizFailed = "퀴즈를 준비할 수 없습니다."
)

// WordbookHandler serves the search, favorites and quiz views
type WordbookHandler struct {
	// Command handlers
	addFavoriteHandler     *command.AddFavoriteHandler
	removeFavoritesHandler *command.RemoveFavoritesHandler
	gradeQuizHandler       *command.GradeQuizHandler
	reloadWordsHandler     *command.ReloadWordsHandler

	// Query handlers
	searchHandler        *query.SearchWordsHandler
	listWordsHandler     *query.ListWordsHandler
	listFavoritesHandler *query.ListFavoritesHandler
	startQuizHandler     *query.StartQuizHandler

	sessions  domain.QuizSessionRepository
	metrics   *Metrics
	templates map[string]*template.Template
}

// NewWordbookHandlerWithDI creates a new wordbook handler using dependency injection
func NewWordbookHandlerWithDI(
	addFavoriteHandler *command.AddFavoriteHandler,
	removeFavoritesHandler *command.RemoveFavoritesHandler,
	gradeQuizHandler *command.GradeQuizHandler,
	reloadWordsHandler *command.ReloadWordsHandler,
	searchHandler *query.SearchWordsHandler,
	listWordsHandler *query.ListWordsHandler,
	listFavoritesHandler *query.ListFavoritesHandler,
	startQuizHandler *query.StartQuizHandler,
	sessions domain.QuizSessionRepository,
	metrics *Metrics,
) *WordbookHandler {
	return &WordbookHandler{
		addFavoriteHandler:     addFavoriteHandler,
		removeFavoritesHandler: removeFavoritesHandler,
		gradeQuizHandler:       gradeQuizHandler,
		reloadWordsHandler:     reloadWordsHandler,
		searchHandler:          searchHandler,
		listWordsHandler:       listWordsHandler,
		listFavoritesHandler:   listFavoritesHandler,
		startQuizHandler:       startQuizHandler,
		sessions:               sessions,
		metrics:                metrics,
		templates:              parseTemplates(),
	}
}

// Index handles GET / by sending the browser to the default view
func (h *WordbookHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/search", http.StatusSeeOther)
}

// Search handles GET /search
func (h *WordbookHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := params.Get("q")

	results, err := h.searchHandler.Handle(r.Context(), query.SearchWordsQuery{Query: q})
	if err != nil {
		h.renderError(w, r, msgLoadFailed, err)
		return
	}

	page := newPage(pageSearch)
	page.Query = q
	page.Results = results

	switch {
	case params.Has("added"):
		page.flash(flashSuccess, params.Get("added")+" 추가됨")
	case params.Has("exists"):
		page.flash(flashInfo, params.Get("exists")+" 이미 즐겨찾기에 있습니다")
	}

	h.render(w, r, http.StatusOK, pageSearch, page)
}

// AddFavorite handles POST /favorites
func (h *WordbookHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	if !r.PostForm.Has("term") {
		http.Error(w, "term is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	cmd := command.AddFavoriteCommand{
		Term:    r.PostForm.Get("term"),
		Meaning: r.PostForm.Get("meaning"),
	}

	res, err := h.addFavoriteHandler.Handle(ctx, cmd)
	if err != nil {
		h.renderError(w, r, msgSaveFailed, err)
		return
	}
	h.metrics.setFavorites(len(res.Favorites))

	v := url.Values{}
	v.Set("q", r.PostForm.Get("q"))
	if res.Added {
		v.Set("added", cmd.Term)
	} else {
		v.Set("exists", cmd.Term)
	}
	http.Redirect(w, r, "/search?"+v.Encode(), http.StatusSeeOther)
}

// ListFavorites handles GET /favorites
func (h *WordbookHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.listFavoritesHandler.Handle(r.Context())
	if err != nil {
		h.renderError(w, r, msgLoadFailed, err)
		return
	}
	h.metrics.setFavorites(len(favorites))

	page := newPage(pageFavorites)
	page.Favorites = favorites
	if r.URL.Query().Has("removed") {
		page.flash(flashSuccess, "제거 완료")
	}

	h.render(w, r, http.StatusOK, pageFavorites, page)
}

// RemoveFavorites handles POST /favorites/remove
func (h *WordbookHandler) RemoveFavorites(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	res, err := h.removeFavoritesHandler.Handle(r.Context(), command.RemoveFavoritesCommand{
		Labels: r.PostForm["label"],
	})
	if err != nil {
		h.renderError(w, r, msgSaveFailed, err)
		return
	}
	h.metrics.setFavorites(len(res.Favorites))

	http.Redirect(w, r, "/favorites?removed="+strconv.Itoa(res.Removed), http.StatusSeeOther)
}

// Quiz handles GET /quiz. The session keeps the same ten questions across
// reloads until they are graded.
func (h *WordbookHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := newPage(pageQuiz)

	res, err := h.startQuizHandler.Handle(ctx, query.StartQuizQuery{SessionID: sessionID(ctx)})
	switch {
	case errors.Is(err, domain.ErrNotEnoughWords):
		page.NotEnoughWords = true
	case err != nil:
		h.renderError(w, r, msgQuizFailed, err)
		return
	default:
		page.Questions = res.Sample
	}

	if r.URL.Query().Has("expired") {
		page.flash(flashWarning, "퀴즈 세션이 만료되어 새 문제를 출제했습니다.")
	}

	h.render(w, r, http.StatusOK, pageQuiz, page)
}

// SubmitQuiz handles POST /quiz
func (h *WordbookHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	answers := make([]string, domain.QuizSize)
	for i := range answers {
		answers[i] = r.PostForm.Get(fmt.Sprintf("q%d", i))
	}

	ctx := r.Context()
	report, err := h.gradeQuizHandler.Handle(ctx, command.GradeQuizCommand{
		SessionID: sessionID(ctx),
		Answers:   answers,
	})
	if errors.Is(err, domain.ErrNoActiveQuiz) {
		logger.Warn(ctx).Msg("Quiz submitted without a pending sample")
		http.Redirect(w, r, "/quiz?expired=1", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.renderError(w, r, msgQuizFailed, err)
		return
	}
	h.metrics.observeQuiz(len(report.Correct), len(report.Incorrect))

	page := newPage(pageQuiz)
	page.Report = report
	h.render(w, r, http.StatusOK, pageQuiz, page)
}

// ReloadWords re-reads the word file, returning the new word count
func (h *WordbookHandler) ReloadWords(ctx context.Context) (int, error) {
	return h.reloadWordsHandler.Handle(ctx)
}

// withWords loads the word table before every view so a broken file halts
// rendering with the error page instead of an empty view.
func (h *WordbookHandler) withWords(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.listWordsHandler.Handle(r.Context()); err != nil {
			h.renderError(w, r, msgLoadFailed, err)
			return
		}
		next(w, r)
	}
}

// route chains metrics, session and word loading for a view
func (h *WordbookHandler) route(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return h.metrics.metricsMiddleware(endpoint, SessionMiddleware(h.withWords(next)))
}

// RegisterRoutes registers all wordbook routes
func (h *WordbookHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.Index).Methods("GET")

	router.HandleFunc("/search", h.route("/search", h.Search)).Methods("GET")

	router.HandleFunc("/favorites", h.route("/favorites", h.ListFavorites)).Methods("GET")
	router.HandleFunc("/favorites", h.route("/favorites", h.AddFavorite)).Methods("POST")
	router.HandleFunc("/favorites/remove", h.route("/favorites/remove", h.RemoveFavorites)).Methods("POST")

	router.HandleFunc("/quiz", h.route("/quiz", h.Quiz)).Methods("GET")
	router.HandleFunc("/quiz", h.route("/quiz", h.SubmitQuiz)).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *WordbookHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck handles GET /health
func (h *WordbookHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	words, err := h.listWordsHandler.Handle(ctx)
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	if p, ok := h.sessions.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"error":  "Session store unavailable",
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"words":  len(words),
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
