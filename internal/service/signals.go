package service

import (
	"math"
	"time"

	"github.com/Maksimka7878/PADL/internal/model"
)

// Signal calculators for the feed scorer. Each is a total function over
// its inputs returning a sub-score on a 0-100 basis; a few intermediate
// values can exceed 100 and are clamped by the weighted combination.

// Neutral scores used when an input carries no signal
const (
	neutralPreferenceScore = 70.0 // no metro or time-of-day preference supplied
	unmatchedTimeOfDay     = 50.0
	neutralEngagementScore = 50.0
	neutralFreshnessScore  = 50.0
)

// skillScore rates how well a user's level fits the lobby's accepted
// range. In-range users score 80-100 depending on how centered they
// are; out-of-range users lose 50 points per full level of gap.
func skillScore(userLevel, minLevel, maxLevel float64) float64 {
	if userLevel >= minLevel && userLevel <= maxLevel {
		center := (minLevel + maxLevel) / 2
		rangeSize := maxLevel - minLevel
		distance := math.Abs(userLevel - center)
		normalized := 0.0
		if rangeSize > 0 {
			normalized = distance / (rangeSize / 2)
		}
		return 100 - normalized*20
	}

	var gap float64
	if userLevel < minLevel {
		gap = minLevel - userLevel
	} else {
		gap = userLevel - maxLevel
	}
	return math.Max(0, 50-gap*50)
}

// timeScore favors near-term actionable games. The 2-6 hour window is
// the ideal planning horizon; games further out decay without being
// fully suppressed, and games under an hour away are penalized as
// hard to join.
func timeScore(startTime, now time.Time) float64 {
	hours := startTime.Sub(now).Hours()

	switch {
	case hours < 0:
		return 0
	case hours < 1:
		return 60
	case hours < 2:
		return 80
	case hours <= 6:
		return 100
	case hours <= 24:
		return 90 - (hours-6)*2
	case hours <= 72:
		return 60 - (hours-24)/2
	default:
		return math.Max(20, 40-(hours-72)/10)
	}
}

// locationScore approximates travel convenience from metro adjacency.
// An exact station match scores 100; stations on a shared line score by
// stop distance; different lines or unknown stations score 40.
func locationScore(station string, preferred []string) float64 {
	if len(preferred) == 0 {
		return neutralPreferenceScore
	}

	for _, p := range preferred {
		if p == station {
			return 100
		}
	}

	for _, p := range preferred {
		if dist, ok := stationStopDistance(station, p); ok {
			return math.Max(50, 90-float64(dist)*5)
		}
	}

	return 40
}

// fillScore is the social-proof signal: almost-full games are the most
// attractive, empty ones mildly discouraged, and full ones pushed down
// so unjoinable games stop surfacing prominently.
func fillScore(participants, required int) float64 {
	if required <= 0 {
		return 30
	}

	fillRate := float64(participants) / float64(required)
	switch {
	case fillRate >= 1.0:
		return 30
	case fillRate >= 0.5:
		return 70 + fillRate*40
	case fillRate == 0:
		return 40
	default:
		return 50 + fillRate*40
	}
}

// timePreferenceScore checks whether the lobby's start hour falls in
// one of the user's preferred time-of-day buckets.
func timePreferenceScore(startTime time.Time, preferred []string) float64 {
	if len(preferred) == 0 {
		return neutralPreferenceScore
	}

	bucket := timeOfDayBucket(startTime.Hour())
	for _, p := range preferred {
		if p == bucket {
			return 100
		}
	}
	return unmatchedTimeOfDay
}

func timeOfDayBucket(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return model.TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return model.TimeOfDayAfternoon
	case hour >= 17 && hour < 21:
		return model.TimeOfDayEvening
	default:
		return model.TimeOfDayNight
	}
}

// engagementScore approximates personalization from implicit behavior.
// Every contribution is independently explainable: prior joins,
// favorites, familiar metro stations, level affinity, and matching
// join-time habits each add a bounded bonus; dismissals subtract.
// Users with no join history get a neutral cold-start score.
func engagementScore(lobby model.Lobby, signals *model.EngagementSignals) float64 {
	if signals == nil || signals.TotalJoins == 0 {
		return neutralEngagementScore
	}

	score := 50.0

	if containsString(signals.JoinedCourts, lobby.CourtName) {
		score += 20
	}
	if containsString(signals.FavoriteCourts, lobby.CourtName) {
		score += 15
	}
	if containsString(signals.PlayedMetros, lobby.Metro) {
		score += 10
	}

	if len(signals.PlayedLevels) > 0 {
		sum := 0.0
		for _, l := range signals.PlayedLevels {
			sum += l
		}
		avg := sum / float64(len(signals.PlayedLevels))
		center := (lobby.MinLevel + lobby.MaxLevel) / 2
		diff := math.Abs(avg - center)
		if diff <= 0.5 {
			score += 10
		} else if diff <= 1.0 {
			score += 5
		}
	}

	if len(signals.JoinTimes) > 0 {
		bucket := timeOfDayBucket(lobby.StartTime.Hour())
		matches := 0
		for _, t := range signals.JoinTimes {
			if t == bucket {
				matches++
			}
		}
		ratio := float64(matches) / float64(len(signals.JoinTimes))
		score += math.Round(ratio * 15)
	}

	if containsString(signals.DismissedCourts, lobby.CourtName) {
		score -= 15
	}

	return math.Max(0, math.Min(100, score))
}

// freshnessScore rewards recently posted lobbies and decays slowly
// after the first day. A missing creation timestamp is neutral.
func freshnessScore(createdAt *time.Time, now time.Time) float64 {
	if createdAt == nil {
		return neutralFreshnessScore
	}

	hours := now.Sub(*createdAt).Hours()
	switch {
	case hours < 1:
		return 100
	case hours < 3:
		return 85
	case hours < 12:
		return 70
	case hours < 24:
		return 55
	default:
		return math.Max(20, 50-(hours-24)/5)
	}
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
