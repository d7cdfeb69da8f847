package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Maksimka7878/PADL/internal/model"
	"github.com/Maksimka7878/PADL/internal/service"
)

// defaultCandidateLimit bounds how many open lobbies a single feed
// request pulls from storage.
const defaultCandidateLimit = 200

// FeedHandler handles personalized feed endpoints
type FeedHandler struct {
	feedService       *service.FeedService
	lobbyService      *service.LobbyService
	engagementService *service.EngagementService
	candidateLimit    int
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *service.FeedService, lobbyService *service.LobbyService, engagementService *service.EngagementService, candidateLimit int) *FeedHandler {
	if candidateLimit <= 0 {
		candidateLimit = defaultCandidateLimit
	}
	return &FeedHandler{
		feedService:       feedService,
		lobbyService:      lobbyService,
		engagementService: engagementService,
		candidateLimit:    candidateLimit,
	}
}

// GetFeed handles GET /v1/feed - ranked lobby feed for a user
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	feed, pd := h.buildFeed(r)
	if pd != nil {
		WriteError(w, pd)
		return
	}

	WriteCollection(w, http.StatusOK, feed, nil, map[string]string{
		"self":     "/v1/feed",
		"sections": "/v1/feed/sections",
	})
}

// GetFeedSections handles GET /v1/feed/sections - feed split into
// display buckets
func (h *FeedHandler) GetFeedSections(w http.ResponseWriter, r *http.Request) {
	feed, pd := h.buildFeed(r)
	if pd != nil {
		WriteError(w, pd)
		return
	}

	sections := h.feedService.FeedSections(feed)
	WriteData(w, http.StatusOK, sections, map[string]string{
		"self": "/v1/feed/sections",
		"feed": "/v1/feed",
	})
}

// buildFeed runs the shared request pipeline: parse inputs, load
// candidates and signals, score, filter.
func (h *FeedHandler) buildFeed(r *http.Request) ([]model.ScoredLobby, *model.ProblemDetails) {
	q := r.URL.Query()

	userID := q.Get("user_id")
	if userID == "" {
		return nil, model.NewBadRequestError("user_id is required")
	}

	prefs, fieldErrors := parsePreferences(q)
	if len(fieldErrors) > 0 {
		return nil, model.NewValidationError(fieldErrors)
	}

	filters, fieldErrors := parseFilters(q)
	if len(fieldErrors) > 0 {
		return nil, model.NewValidationError(fieldErrors)
	}

	signals, err := h.engagementService.Signals(r.Context(), userID)
	if err != nil {
		return nil, MapServiceErrorWithContext(err, "load engagement signals")
	}

	lobbies, err := h.lobbyService.ListOpen(r.Context(), h.candidateLimit)
	if err != nil {
		return nil, MapServiceErrorWithContext(err, "list open lobbies")
	}

	feed := h.feedService.GenerateFeed(lobbies, prefs, signals)
	feed = h.feedService.ApplyFilters(feed, filters)
	return feed, nil
}

func parsePreferences(q map[string][]string) (model.UserPreferences, []model.FieldError) {
	var fieldErrors []model.FieldError
	prefs := model.UserPreferences{}

	skill := queryGet(q, "skill_level")
	if skill == "" {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "skill_level",
			Message: "skill_level is required",
		})
	} else if v, err := strconv.ParseFloat(skill, 64); err != nil {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "skill_level",
			Message: "skill_level must be a number",
		})
	} else {
		prefs.SkillLevel = v
	}

	prefs.PreferredMetro = queryList(q, "preferred_metro")
	prefs.PreferredTimes = queryList(q, "preferred_times")

	if price := queryGet(q, "max_price"); price != "" {
		v, err := strconv.ParseFloat(price, 64)
		if err != nil {
			fieldErrors = append(fieldErrors, model.FieldError{
				Field:   "max_price",
				Message: "max_price must be a number",
			})
		} else {
			prefs.MaxPrice = &v
		}
	}

	return prefs, fieldErrors
}

func parseFilters(q map[string][]string) (model.FeedFilters, []model.FieldError) {
	var fieldErrors []model.FieldError
	filters := model.FeedFilters{}

	if v, fe := queryFloat(q, "min_level"); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	} else {
		filters.MinLevel = v
	}
	if v, fe := queryFloat(q, "max_level"); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	} else {
		filters.MaxLevel = v
	}
	if v, fe := queryFloat(q, "price_limit"); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	} else {
		filters.MaxPrice = v
	}

	filters.Metro = queryList(q, "metro")

	if v, fe := queryTime(q, "date_from"); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	} else {
		filters.DateFrom = v
	}
	if v, fe := queryTime(q, "date_to"); fe != nil {
		fieldErrors = append(fieldErrors, *fe)
	} else {
		filters.DateTo = v
	}

	filters.HasSpots = queryGet(q, "has_spots") == "true"

	return filters, fieldErrors
}

// Query parsing helpers

func queryGet(q map[string][]string, key string) string {
	if vals, ok := q[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// queryList parses a comma-separated query parameter into a slice
func queryList(q map[string][]string, key string) []string {
	raw := queryGet(q, key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func queryFloat(q map[string][]string, key string) (*float64, *model.FieldError) {
	raw := queryGet(q, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &model.FieldError{Field: key, Message: key + " must be a number"}
	}
	return &v, nil
}

func queryTime(q map[string][]string, key string) (*time.Time, *model.FieldError) {
	raw := queryGet(q, key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, &model.FieldError{Field: key, Message: key + " must be RFC 3339"}
	}
	return &t, nil
}
