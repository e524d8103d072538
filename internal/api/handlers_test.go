package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/moodatlas/internal/analytics"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage/sqlite"
)

var testNow = time.Date(2024, 5, 8, 15, 0, 0, 0, time.UTC)

type testServer struct {
	store  *sqlite.Store
	router http.Handler
	user   models.User
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	ctx := context.Background()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	user := models.User{Username: "ana"}
	require.NoError(t, store.AddUser(ctx, &user))

	engine := analytics.NewEngine(store, store, store,
		analytics.WithClock(func() time.Time { return testNow }),
		analytics.WithLocation(time.UTC),
	)

	return testServer{
		store:  store,
		router: NewRouter(NewHandler(store, engine, time.UTC)),
		user:   user,
	}
}

func (s testServer) addEntry(t *testing.T, day, content string) models.Entry {
	t.Helper()
	date, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	e := models.Entry{UserID: s.user.ID, Title: "Entry " + day, Content: content, EntryDate: date}
	require.NoError(t, s.store.AddEntry(context.Background(), &e))
	return e
}

func (s testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.get(t, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Version)
}

func TestAnalytics(t *testing.T) {
	s := newTestServer(t)
	s.addEntry(t, "2024-05-06", "one two three")
	s.addEntry(t, "2024-05-07", "one two three four five")
	s.addEntry(t, "2024-05-08", "one")
	s.addEntry(t, "2024-04-01", "outside the window")

	rec := s.get(t, "/api/users/ana/analytics?from=2024-05-06&to=2024-05-08")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Username  string `json:"username"`
		From      string `json:"from"`
		To        string `json:"to"`
		Analytics struct {
			TotalEntries     int            `json:"total_entries"`
			CurrentStreak    int            `json:"current_streak"`
			LongestStreak    int            `json:"longest_streak"`
			MissedDays       int            `json:"missed_days"`
			MoodDistribution map[string]int `json:"mood_distribution"`
			MostFrequentMood string         `json:"most_frequent_mood"`
			AverageWordCount int            `json:"average_word_count"`
			WordCountTrend   []struct {
				WeekStart        string `json:"week_start"`
				AverageWordCount int    `json:"average_word_count"`
			} `json:"word_count_trend"`
		} `json:"analytics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "ana", body.Username)
	assert.Equal(t, "2024-05-06", body.From)
	assert.Equal(t, "2024-05-08", body.To)
	assert.Equal(t, 3, body.Analytics.TotalEntries)
	assert.Equal(t, 3, body.Analytics.CurrentStreak)
	assert.Equal(t, 3, body.Analytics.LongestStreak)
	assert.Equal(t, 0, body.Analytics.MissedDays)
	assert.Equal(t, 3, body.Analytics.AverageWordCount)
	assert.Equal(t, "No moods recorded", body.Analytics.MostFrequentMood)
	assert.Equal(t, map[string]int{"Positive": 0, "Neutral": 0, "Negative": 0}, body.Analytics.MoodDistribution)
	require.Len(t, body.Analytics.WordCountTrend, 1)
	assert.Equal(t, "2024-05-06", body.Analytics.WordCountTrend[0].WeekStart)
}

func TestAnalyticsWithoutRange(t *testing.T) {
	s := newTestServer(t)
	s.addEntry(t, "2024-05-01", "first")
	s.addEntry(t, "2024-05-08", "second")

	rec := s.get(t, "/api/users/ana/analytics")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[AnalyticsResponse](t, rec)
	assert.Empty(t, body.From)
	assert.Empty(t, body.To)
	assert.Equal(t, 2, body.Snapshot.TotalEntries)
	assert.Equal(t, 6, body.Snapshot.MissedDays)
}

func TestEntries(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	older := s.addEntry(t, "2024-05-06", "a quiet morning")
	s.addEntry(t, "2024-05-08", "rain again")

	moods, err := s.store.GetAllMoods(ctx)
	require.NoError(t, err)
	require.NoError(t, s.store.AddMoodToEntry(ctx, older.ID, moods[0].ID, true))
	tags, err := s.store.GetAllTags(ctx)
	require.NoError(t, err)
	require.NoError(t, s.store.AddTagToEntry(ctx, older.ID, tags[0].ID))

	t.Run("all entries newest first", func(t *testing.T) {
		rec := s.get(t, "/api/users/ana/entries")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[EntriesResponse](t, rec)
		require.Equal(t, 2, body.Count)
		assert.Equal(t, "2024-05-08", body.Entries[0].EntryDate)
		assert.Empty(t, body.Entries[0].Moods)
		assert.NotNil(t, body.Entries[0].Moods)

		assert.Equal(t, "2024-05-06", body.Entries[1].EntryDate)
		assert.Equal(t, 3, body.Entries[1].WordCount)
		require.Len(t, body.Entries[1].Moods, 1)
		assert.Equal(t, moods[0].Name, body.Entries[1].Moods[0].Name)
		require.Len(t, body.Entries[1].Tags, 1)
		assert.Equal(t, tags[0].Name, body.Entries[1].Tags[0].Name)
	})

	t.Run("half-open range", func(t *testing.T) {
		rec := s.get(t, "/api/users/ana/entries?from=2024-05-07")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[EntriesResponse](t, rec)
		require.Equal(t, 1, body.Count)
		assert.Equal(t, "2024-05-08", body.Entries[0].EntryDate)
	})
}

func TestErrorResponses(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		substr string
	}{
		{"unknown user", "/api/users/ghost/analytics", http.StatusNotFound, `user "ghost" not found`},
		{"unknown user entries", "/api/users/ghost/entries", http.StatusNotFound, "not found"},
		{"malformed from", "/api/users/ana/analytics?from=05-06-2024", http.StatusBadRequest, "validation failed"},
		{"malformed to", "/api/users/ana/entries?to=tomorrow", http.StatusBadRequest, "validation failed"},
		{"inverted range", "/api/users/ana/analytics?from=2024-05-08&to=2024-05-01", http.StatusBadRequest, "before"},
		{"unknown route", "/api/nope", http.StatusNotFound, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.get(t, tt.path)

			assert.Equal(t, tt.status, rec.Code)
			body := decode[ErrorResponse](t, rec)
			assert.Contains(t, body.Error, tt.substr)
			assert.NotEmpty(t, body.RequestID, "request ID middleware should tag errors")
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users/ana/entries", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type failingStore struct {
	Store
}

func (failingStore) GetUserByUsername(context.Context, string) (models.User, error) {
	return models.User{}, errors.New("disk on fire")
}

func TestInternalErrorsAreRedacted(t *testing.T) {
	h := NewHandler(failingStore{}, nil, time.UTC)
	router := NewRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/users/ana/analytics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "internal server error", body.Error)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}
