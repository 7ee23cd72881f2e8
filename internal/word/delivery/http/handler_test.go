package http

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/wordbook/internal/testutil"
	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/internal/word/repository"
	"github.com/tair/wordbook/internal/word/usecase/command"
	"github.com/tair/wordbook/internal/word/usecase/query"
)

type fixture struct {
	words     *testutil.WordRepository
	favorites *testutil.FavoriteRepository
	sessions  *repository.MemoryQuizSessionRepository
	metrics   *Metrics
	router    *mux.Router
}

func newFixture(t *testing.T, words []domain.Entry) *fixture {
	t.Helper()

	f := &fixture{
		words:     &testutil.WordRepository{Words: words},
		favorites: &testutil.FavoriteRepository{},
		sessions:  repository.NewMemoryQuizSessionRepository(time.Hour),
		metrics:   NewMetrics(prometheus.NewRegistry()),
		router:    mux.NewRouter(),
	}

	events := domain.NopPublisher{}
	h := NewWordbookHandlerWithDI(
		command.NewAddFavoriteHandler(f.favorites, events),
		command.NewRemoveFavoritesHandler(f.favorites, events),
		command.NewGradeQuizHandler(f.sessions, events),
		command.NewReloadWordsHandler(f.words),
		query.NewSearchWordsHandler(f.words),
		query.NewListWordsHandler(f.words),
		query.NewListFavoritesHandler(f.favorites),
		query.NewStartQuizHandler(f.words, f.sessions, rand.New(rand.NewPCG(1, 2))),
		f.sessions,
		f.metrics,
	)
	h.RegisterRoutes(f.router)
	h.RegisterHealthCheck(f.router)
	return f
}

func (f *fixture) do(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatalf("response did not set %s", SessionCookie)
	return nil
}

var animals = []domain.Entry{
	{Term: "いぬ", Meaning: "개"},
	{Term: "ねこ", Meaning: "고양이"},
	{Term: "とり", Meaning: "새, 닭"},
}

func TestIndexRedirectsToSearch(t *testing.T) {
	f := newFixture(t, animals)

	rec := f.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/search", rec.Header().Get("Location"))
}

func TestSearch(t *testing.T) {
	f := newFixture(t, animals)

	tests := []struct {
		name    string
		query   string
		want    []string
		notWant []string
	}{
		{name: "empty query", query: "", notWant: []string{"검색됨", "⭐ 추가"}},
		{name: "by meaning", query: "고양이", want: []string{"🔍 1개 검색됨", "ねこ : 고양이", "⭐ 추가"}},
		{name: "by term", query: "と", want: []string{"🔍 1개 검색됨", "とり : 새, 닭"}},
		{name: "no match", query: "말", notWant: []string{"검색됨"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodGet, "/search?q="+url.QueryEscape(tt.query), nil)
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			for _, s := range tt.want {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestAddFavorite(t *testing.T) {
	f := newFixture(t, animals)
	form := url.Values{"term": {"ねこ"}, "meaning": {"고양이"}, "q": {"고양이"}}

	rec := f.do(http.MethodPost, "/favorites", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/search", loc.Path)
	assert.Equal(t, "고양이", loc.Query().Get("q"))
	assert.Equal(t, "ねこ", loc.Query().Get("added"))
	assert.Equal(t, []domain.Entry{{Term: "ねこ", Meaning: "고양이"}}, f.favorites.Favorites)

	rec = f.do(http.MethodGet, loc.String(), nil)
	assert.Contains(t, rec.Body.String(), "ねこ 추가됨")
	assert.Contains(t, rec.Body.String(), "ねこ : 고양이")

	rec = f.do(http.MethodPost, "/favorites", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err = url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "ねこ", loc.Query().Get("exists"))
	assert.Len(t, f.favorites.Favorites, 1)
	assert.Equal(t, 1, f.favorites.Saves)
	assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.favorites))
}

func TestAddFavoriteRequiresTerm(t *testing.T) {
	f := newFixture(t, animals)

	rec := f.do(http.MethodPost, "/favorites", url.Values{"meaning": {"개"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.favorites.Favorites)
}

func TestAddFavoriteSaveFailure(t *testing.T) {
	f := newFixture(t, animals)
	f.favorites.SaveErr = errors.New("read-only file system")

	rec := f.do(http.MethodPost, "/favorites", url.Values{"term": {"いぬ"}, "meaning": {"개"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), msgSaveFailed)
	assert.Contains(t, rec.Body.String(), "read-only file system")
}

func TestFavoritesView(t *testing.T) {
	f := newFixture(t, animals)

	rec := f.do(http.MethodGet, "/favorites", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "즐겨찾기된 단어가 없습니다.")
	assert.NotContains(t, rec.Body.String(), "선택한 단어 제거")

	f.favorites.Favorites = []domain.Entry{animals[0], animals[1]}
	rec = f.do(http.MethodGet, "/favorites", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "📌 즐겨찾기 목록")
	assert.Contains(t, body, `value="いぬ : 개"`)
	assert.Contains(t, body, `value="ねこ : 고양이"`)
	assert.Contains(t, body, "선택한 단어 제거")
	assert.NotContains(t, body, "제거 완료")
}

func TestRemoveFavorites(t *testing.T) {
	f := newFixture(t, animals)
	f.favorites.Favorites = []domain.Entry{animals[0], animals[1], animals[2]}

	form := url.Values{"label": {"いぬ : 개", "とり : 새, 닭", "없는 : 단어"}}
	rec := f.do(http.MethodPost, "/favorites/remove", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/favorites?removed=2", rec.Header().Get("Location"))
	assert.Equal(t, []domain.Entry{animals[1]}, f.favorites.Favorites)

	rec = f.do(http.MethodGet, "/favorites?removed=2", nil)
	assert.Contains(t, rec.Body.String(), "제거 완료")
	assert.NotContains(t, rec.Body.String(), "いぬ : 개")
	assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.favorites))
}

func TestQuizNeedsTenWords(t *testing.T) {
	f := newFixture(t, testutil.Words(domain.QuizSize-1))

	rec := f.do(http.MethodGet, "/quiz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "단어가 10개 이상 있어야 퀴즈가 가능합니다.")
	assert.NotContains(t, body, `name="q0"`)
	assert.NotContains(t, body, "제출")
}

func TestQuizSampleIsStableUntilGraded(t *testing.T) {
	f := newFixture(t, testutil.Words(30))
	ctx := context.Background()

	first := f.do(http.MethodGet, "/quiz", nil)
	require.Equal(t, http.StatusOK, first.Code)
	cookie := sessionCookie(t, first)
	assert.Contains(t, first.Body.String(), `name="q9"`)
	assert.NotContains(t, first.Body.String(), `name="q10"`)

	sample, ok, err := f.sessions.Get(ctx, cookie.Value)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, sample, domain.QuizSize)
	assert.Contains(t, first.Body.String(), "1. "+sample[0].Meaning)

	again := f.do(http.MethodGet, "/quiz", nil, cookie)
	assert.Equal(t, first.Body.String(), again.Body.String())

	form := url.Values{}
	for i, e := range sample {
		answer := e.Term
		if i == 0 {
			answer = "wrong"
		}
		form.Set("q"+strconv.Itoa(i), " "+answer+" ")
	}

	rec := f.do(http.MethodPost, "/quiz", form, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "✅ 정답: 9개")
	assert.Contains(t, body, "❌ 오답: 1개")
	assert.Contains(t, body, "맞힌 문제:")
	assert.Contains(t, body, sample[0].Meaning+" → ❌ wrong (정답: "+sample[0].Term+")")
	assert.Contains(t, body, sample[1].Meaning+" → "+sample[1].Term)

	assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.quizGraded))
	assert.Equal(t, float64(9), promtestutil.ToFloat64(f.metrics.quizAnswers.WithLabelValues("correct")))
	assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.quizAnswers.WithLabelValues("incorrect")))

	_, ok, err = f.sessions.Get(ctx, cookie.Value)
	require.NoError(t, err)
	assert.False(t, ok, "graded sample must be discarded")

	f.do(http.MethodGet, "/quiz", nil, cookie)
	next, ok, err := f.sessions.Get(ctx, cookie.Value)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, next, domain.QuizSize)
}

func TestSubmitQuizWithoutSample(t *testing.T) {
	f := newFixture(t, testutil.Words(30))

	rec := f.do(http.MethodPost, "/quiz", url.Values{"q0": {"term0"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/quiz?expired=1", rec.Header().Get("Location"))

	rec = f.do(http.MethodGet, "/quiz?expired=1", nil)
	assert.Contains(t, rec.Body.String(), "퀴즈 세션이 만료되어")
	assert.Equal(t, float64(0), promtestutil.ToFloat64(f.metrics.quizGraded))
}

func TestSessionCookieReplacedWhenMalformed(t *testing.T) {
	f := newFixture(t, testutil.Words(30))

	rec := f.do(http.MethodGet, "/quiz", nil, &http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	assert.NotEqual(t, "not-a-uuid", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestWordFileErrorsHaltViews(t *testing.T) {
	f := newFixture(t, nil)
	f.words.Err = &domain.FormatError{Path: "N3.csv", Line: 4, Err: errors.New("wrong number of fields")}

	for _, target := range []string{"/search?q=x", "/favorites", "/quiz"} {
		t.Run(target, func(t *testing.T) {
			rec := f.do(http.MethodGet, target, nil)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "CSV 파일 형식 오류!")
			assert.Contains(t, body, "N3.csv: line 4")
			assert.NotContains(t, body, "즐겨찾기된 단어가 없습니다.")
		})
	}

	f.words.Err = errors.New("open N3.csv: no such file or directory")
	rec := f.do(http.MethodGet, "/search", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), msgLoadFailed)
	assert.NotContains(t, rec.Body.String(), "CSV 파일 형식 오류!")
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t, animals)

	rec := f.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(len(animals)), body["words"])

	f.words.Err = errors.New("boom")
	rec = f.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
