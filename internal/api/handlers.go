package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/moodatlas/internal/analytics"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/models"
	"github.com/julianstephens/moodatlas/internal/storage"
	"github.com/julianstephens/moodatlas/internal/utils"
	"github.com/julianstephens/moodatlas/internal/validation"
)

// Store is the read-only subset of storage.Provider the API needs.
type Store interface {
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetEntriesByUser(ctx context.Context, userID string) ([]models.Entry, error)
	GetEntriesByDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.Entry, error)
}

// Handler serves the read API.
type Handler struct {
	store     Store
	engine    *analytics.Engine
	validator *validation.Validator
	loc       *time.Location
}

// NewHandler creates a Handler. Query dates are interpreted in loc.
func NewHandler(store Store, engine *analytics.Engine, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		store:     store,
		engine:    engine,
		validator: validation.New(),
		loc:       loc,
	}
}

// NewRouter wires the handler's routes and middleware.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Route("/api/users/{username}", func(r chi.Router) {
		r.Get("/analytics", h.Analytics)
		r.Get("/entries", h.Entries)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: constants.Version})
}

// rangeQuery holds the optional inclusive date window of a request.
type rangeQuery struct {
	Username string `validate:"required,max=50"`
	From     string `validate:"omitempty,datetime=2006-01-02"`
	To       string `validate:"omitempty,datetime=2006-01-02"`
}

type window struct {
	start *time.Time
	end   *time.Time
}

func (h *Handler) parseRange(r *http.Request) (string, window, error) {
	q := rangeQuery{
		Username: chi.URLParam(r, "username"),
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}
	if err := h.validator.Struct(q); err != nil {
		return "", window{}, err
	}

	start, err := utils.ParseOptionalDate(q.From, h.loc)
	if err != nil {
		return "", window{}, err
	}
	end, err := utils.ParseOptionalDate(q.To, h.loc)
	if err != nil {
		return "", window{}, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return "", window{}, fmt.Errorf("'to' date %s is before 'from' date %s", q.To, q.From)
	}
	return q.Username, window{start: start, end: end}, nil
}

// lookupUser writes a 404 or 500 response and returns false when the user
// cannot be loaded.
func (h *Handler) lookupUser(w http.ResponseWriter, r *http.Request, username string) (models.User, bool) {
	user, err := h.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, fmt.Sprintf("user %q not found", username))
			return models.User{}, false
		}
		respondInternalError(w, r, "Failed to load user", err)
		return models.User{}, false
	}
	return user, true
}

// AnalyticsResponse is returned by GET /api/users/{username}/analytics.
type AnalyticsResponse struct {
	Username string             `json:"username"`
	From     string             `json:"from,omitempty"`
	To       string             `json:"to,omitempty"`
	Snapshot analytics.Snapshot `json:"analytics"`
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	username, win, err := h.parseRange(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user, ok := h.lookupUser(w, r, username)
	if !ok {
		return
	}

	snap, err := h.engine.Compute(r.Context(), user.ID, win.start, win.end)
	if err != nil {
		respondInternalError(w, r, "Failed to compute analytics", err)
		return
	}

	respondJSON(w, http.StatusOK, AnalyticsResponse{
		Username: user.Username,
		From:     formatOptional(win.start),
		To:       formatOptional(win.end),
		Snapshot: snap,
	})
}

// EntryResponse is one entry with its resolved moods and tags.
type EntryResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	EntryDate string        `json:"entry_date"`
	WordCount int           `json:"word_count"`
	Moods     []models.Mood `json:"moods"`
	Tags      []models.Tag  `json:"tags"`
}

// EntriesResponse is returned by GET /api/users/{username}/entries.
type EntriesResponse struct {
	Username string          `json:"username"`
	Count    int             `json:"count"`
	Entries  []EntryResponse `json:"entries"`
}

func (h *Handler) Entries(w http.ResponseWriter, r *http.Request) {
	username, win, err := h.parseRange(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user, ok := h.lookupUser(w, r, username)
	if !ok {
		return
	}

	var entries []models.Entry
	if win.start == nil && win.end == nil {
		entries, err = h.store.GetEntriesByUser(r.Context(), user.ID)
	} else {
		start, end := openRange(win)
		entries, err = h.store.GetEntriesByDateRange(r.Context(), user.ID, start, end)
	}
	if err != nil {
		respondInternalError(w, r, "Failed to load entries", err)
		return
	}

	moodsByEntry, tagsByEntry, err := h.engine.Associations(r.Context(), entries)
	if err != nil {
		respondInternalError(w, r, "Failed to load entry associations", err)
		return
	}

	resp := EntriesResponse{
		Username: user.Username,
		Count:    len(entries),
		Entries:  make([]EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		moods := moodsByEntry[e.ID]
		if moods == nil {
			moods = []models.Mood{}
		}
		tags := tagsByEntry[e.ID]
		if tags == nil {
			tags = []models.Tag{}
		}
		resp.Entries = append(resp.Entries, EntryResponse{
			ID:        e.ID,
			Title:     e.Title,
			Content:   e.Content,
			EntryDate: e.EntryDate.Format(constants.DateFormat),
			WordCount: e.WordCount,
			Moods:     moods,
			Tags:      tags,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

// openRange fills a missing bound with a date no entry can precede or follow.
func openRange(win window) (time.Time, time.Time) {
	start := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	if win.start != nil {
		start = *win.start
	}
	if win.end != nil {
		end = *win.end
	}
	return start, end
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(constants.DateFormat)
}
