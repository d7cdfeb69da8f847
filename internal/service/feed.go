package service

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/Maksimka7878/PADL/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Signal weights for the final score. They sum to 1.0, net of the flat
// price bonus which is added after weighting.
const (
	weightSkill         = 0.35
	weightTime          = 0.20
	weightLocation      = 0.15
	weightEngagement    = 0.10
	weightFill          = 0.08
	weightTimeOfDay     = 0.07
	weightCreatorRating = 0.03
	weightFreshness     = 0.02
)

const (
	// Creator rating is on a 0-5 scale and rescaled to a 0-100 basis
	// before weighting. A lobby without a rating defaults to 4.
	defaultCreatorRating = 4.0
	creatorRatingScale   = 20.0

	priceBonus = 5.0

	// Thresholds at which a sub-score earns a match reason
	reasonThresholdSkill      = 80.0
	reasonThresholdTime       = 80.0
	reasonThresholdLocation   = 80.0
	reasonThresholdFill       = 80.0
	reasonThresholdEngagement = 70.0
	reasonThresholdFreshness  = 85.0

	// Serendipity: low-scoring lobbies get a random exploration boost
	serendipityThreshold          = 60
	serendipityBoost              = 15
	DefaultSerendipityProbability = 0.1

	// Diversity: at most maxPerCourt lobbies per court within the
	// first diversityCapWindow feed entries. Once the output already
	// holds more than diversityCapWindow entries the cap stops
	// applying; repeats flow freely after that point.
	maxPerCourt        = 3
	diversityCapWindow = 20

	// Section sizes and rules
	recommendedMinScore   = 65
	recommendedSize       = 8
	startingSoonHorizon   = 6 * time.Hour
	startingSoonSize      = 5
	nearYouSize           = 4
	popularSize           = 4
	newLobbiesSize        = 4
	serendipitySectionCap = 3
)

// Match reason strings surfaced to the client
const (
	ReasonGoodLevelMatch  = "good level match"
	ReasonConvenientTime  = "convenient time"
	ReasonNearYou         = "near you"
	ReasonAlmostFull      = "almost full"
	ReasonYoullLikeThis   = "you'll like this"
	ReasonNew             = "new"
	ReasonWithinBudget    = "within budget"
	ReasonTrySomethingNew = "try something new"
)

// FeedServiceConfig holds feed service configuration
type FeedServiceConfig struct {
	// SerendipityProbability is the per-lobby chance of an exploration
	// boost. Zero disables injection; a negative value selects the
	// default of 0.1.
	SerendipityProbability float64

	// RandomSeed seeds the serendipity draw. Zero seeds from the
	// current time; tests pass a fixed seed for determinism.
	RandomSeed int64

	// Now overrides the clock for the time-dependent signals.
	// Defaults to time.Now.
	Now func() time.Time
}

// FeedService is the feed-ranking core: it scores lobby candidates for
// a user, assembles the ranked feed, partitions it into display
// sections, and applies manual filters. It performs no I/O; callers
// supply candidates, preferences, and engagement signals.
type FeedService struct {
	serendipityProb float64
	now             func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewFeedService creates a new feed service
func NewFeedService(cfg FeedServiceConfig) *FeedService {
	prob := cfg.SerendipityProbability
	if prob < 0 {
		prob = DefaultSerendipityProbability
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &FeedService{
		serendipityProb: prob,
		now:             now,
		rng:             rand.New(rand.NewSource(seed)),
	}
}

// ScoreLobby computes the final 0-100 score for a single lobby along
// with its match reasons and recommendation tag. Missing optional
// fields (price, rating, creation time) fall back to documented
// defaults; the function never fails.
func (s *FeedService) ScoreLobby(lobby model.Lobby, prefs model.UserPreferences, signals *model.EngagementSignals) model.ScoredLobby {
	now := s.now()

	skill := skillScore(prefs.SkillLevel, lobby.MinLevel, lobby.MaxLevel)
	timing := timeScore(lobby.StartTime, now)
	location := locationScore(lobby.Metro, prefs.PreferredMetro)
	fill := fillScore(lobby.ParticipantsCount, lobby.RequiredPlayers)
	timeOfDay := timePreferenceScore(lobby.StartTime, prefs.PreferredTimes)
	engagement := engagementScore(lobby, signals)
	freshness := freshnessScore(lobby.CreatedAt, now)

	var reasons []string
	if skill >= reasonThresholdSkill {
		reasons = append(reasons, ReasonGoodLevelMatch)
	}
	if timing >= reasonThresholdTime {
		reasons = append(reasons, ReasonConvenientTime)
	}
	if location >= reasonThresholdLocation {
		reasons = append(reasons, ReasonNearYou)
	}
	if fill >= reasonThresholdFill {
		reasons = append(reasons, ReasonAlmostFull)
	}
	if engagement >= reasonThresholdEngagement && signals != nil && signals.TotalJoins > 0 {
		reasons = append(reasons, ReasonYoullLikeThis)
	}
	if freshness >= reasonThresholdFreshness {
		reasons = append(reasons, ReasonNew)
	}

	bonus := 0.0
	if prefs.MaxPrice != nil && lobby.PricePerHour != nil && lobby.RequiredPlayers > 0 {
		perPlayer := *lobby.PricePerHour / float64(lobby.RequiredPlayers)
		if perPlayer <= *prefs.MaxPrice {
			bonus = priceBonus
			reasons = append(reasons, ReasonWithinBudget)
		}
	}

	rating := defaultCreatorRating
	if lobby.CreatorRating != nil {
		rating = *lobby.CreatorRating
	}

	weighted := skill*weightSkill +
		timing*weightTime +
		location*weightLocation +
		engagement*weightEngagement +
		fill*weightFill +
		timeOfDay*weightTimeOfDay +
		rating*creatorRatingScale*weightCreatorRating +
		freshness*weightFreshness +
		bonus

	score := int(math.Round(math.Min(100, weighted)))

	// Tag precedence is a strict if/else-if chain: a fresh lobby is
	// tagged "new" even when its fill rate also qualifies it as
	// "popular".
	tag := model.RecommendationPersonalized
	switch {
	case freshness >= reasonThresholdFreshness:
		tag = model.RecommendationNew
	case engagement >= reasonThresholdEngagement && signals != nil && signals.TotalJoins > 2:
		tag = model.RecommendationPersonalized
	case fill >= reasonThresholdFill:
		tag = model.RecommendationPopular
	}

	lobbiesScoredTotal.Inc()

	return model.ScoredLobby{
		Lobby:              lobby,
		Score:              score,
		MatchReasons:       reasons,
		RecommendationType: tag,
	}
}

// GenerateFeed scores all candidates, applies the serendipity draw,
// sorts descending by score, and enforces the per-court diversity cap.
// The sort is stable so ties preserve candidate order.
func (s *FeedService) GenerateFeed(lobbies []model.Lobby, prefs model.UserPreferences, signals *model.EngagementSignals) []model.ScoredLobby {
	timer := prometheus.NewTimer(feedGenerationDuration)
	defer timer.ObserveDuration()

	scored := make([]model.ScoredLobby, 0, len(lobbies))
	for _, lobby := range lobbies {
		scored = append(scored, s.ScoreLobby(lobby, prefs, signals))
	}

	if s.serendipityProb > 0 {
		for i := range scored {
			if scored[i].Score >= serendipityThreshold {
				continue
			}
			if s.draw() >= s.serendipityProb {
				continue
			}
			scored[i].Score += serendipityBoost
			scored[i].MatchReasons = append(scored[i].MatchReasons, ReasonTrySomethingNew)
			scored[i].RecommendationType = model.RecommendationSerendipity
			serendipityInjectionsTotal.Inc()
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	perCourt := make(map[string]int)
	feed := make([]model.ScoredLobby, 0, len(scored))
	for _, sl := range scored {
		if perCourt[sl.CourtName] < maxPerCourt || len(feed) > diversityCapWindow {
			feed = append(feed, sl)
			perCourt[sl.CourtName]++
		}
	}

	feedsGeneratedTotal.Inc()
	return feed
}

// FeedSections projects an already-diversified feed into its named
// display buckets. Each bucket is an independent filter/sort/slice, so
// a lobby can appear in several sections at once.
func (s *FeedService) FeedSections(feed []model.ScoredLobby) model.FeedSections {
	now := s.now()

	// Empty buckets serialize as [] rather than null
	sections := model.FeedSections{
		Recommended:  []model.ScoredLobby{},
		StartingSoon: []model.ScoredLobby{},
		NearYou:      []model.ScoredLobby{},
		Popular:      []model.ScoredLobby{},
		NewLobbies:   []model.ScoredLobby{},
		Serendipity:  []model.ScoredLobby{},
	}

	for _, sl := range feed {
		if sl.Score >= recommendedMinScore && len(sections.Recommended) < recommendedSize {
			sections.Recommended = append(sections.Recommended, sl)
		}
		if containsString(sl.MatchReasons, ReasonNearYou) && len(sections.NearYou) < nearYouSize {
			sections.NearYou = append(sections.NearYou, sl)
		}
		if sl.RecommendationType == model.RecommendationNew && len(sections.NewLobbies) < newLobbiesSize {
			sections.NewLobbies = append(sections.NewLobbies, sl)
		}
		if sl.RecommendationType == model.RecommendationSerendipity && len(sections.Serendipity) < serendipitySectionCap {
			sections.Serendipity = append(sections.Serendipity, sl)
		}
	}

	horizon := now.Add(startingSoonHorizon)
	soon := []model.ScoredLobby{}
	for _, sl := range feed {
		if sl.StartTime.After(now) && sl.StartTime.Before(horizon) {
			soon = append(soon, sl)
		}
	}
	sort.SliceStable(soon, func(i, j int) bool {
		return soon[i].StartTime.Before(soon[j].StartTime)
	})
	if len(soon) > startingSoonSize {
		soon = soon[:startingSoonSize]
	}
	sections.StartingSoon = soon

	popular := []model.ScoredLobby{}
	for _, sl := range feed {
		if float64(sl.ParticipantsCount) >= float64(sl.RequiredPlayers)*0.5 && sl.ParticipantsCount < sl.RequiredPlayers {
			popular = append(popular, sl)
		}
	}
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].ParticipantsCount > popular[j].ParticipantsCount
	})
	if len(popular) > popularSize {
		popular = popular[:popularSize]
	}
	sections.Popular = popular

	return sections
}

// ApplyFilters excludes lobbies that fail any supplied predicate.
// Absent filter fields impose no constraint; the per-participant price
// check only applies when both the lobby price and the ceiling exist.
func (s *FeedService) ApplyFilters(feed []model.ScoredLobby, filters model.FeedFilters) []model.ScoredLobby {
	out := make([]model.ScoredLobby, 0, len(feed))

	for _, sl := range feed {
		if filters.MinLevel != nil && sl.MaxLevel < *filters.MinLevel {
			continue
		}
		if filters.MaxLevel != nil && sl.MinLevel > *filters.MaxLevel {
			continue
		}
		if len(filters.Metro) > 0 && !containsString(filters.Metro, sl.Metro) {
			continue
		}
		if filters.DateFrom != nil && sl.StartTime.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && sl.StartTime.After(*filters.DateTo) {
			continue
		}
		if filters.MaxPrice != nil && sl.PricePerHour != nil && sl.RequiredPlayers > 0 {
			if *sl.PricePerHour/float64(sl.RequiredPlayers) > *filters.MaxPrice {
				continue
			}
		}
		if filters.HasSpots && sl.IsFull() {
			continue
		}
		out = append(out, sl)
	}

	return out
}

func (s *FeedService) draw() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
