package analytics

import (
	"fmt"
	"sort"

	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/logger"
	"github.com/julianstephens/moodatlas/internal/models"
)

// TagCount is one row of the tag frequency ranking.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// resolveMoods joins mood links against the catalog, grouped by entry ID.
// Links pointing at unknown moods, or moods outside the known categories,
// are dropped.
func resolveMoods(links []models.EntryMood, catalog []models.Mood) map[string][]models.Mood {
	byID := make(map[string]models.Mood, len(catalog))
	for _, m := range catalog {
		byID[m.ID] = m
	}

	resolved := make(map[string][]models.Mood)
	for _, link := range links {
		mood, ok := byID[link.MoodID]
		if !ok {
			logger.Debug("Skipping dangling mood link", "entry", link.EntryID, "mood", link.MoodID)
			continue
		}
		if !mood.Category.Valid() {
			logger.Debug("Skipping mood with unknown category", "mood", mood.ID, "category", mood.Category)
			continue
		}
		resolved[link.EntryID] = append(resolved[link.EntryID], mood)
	}
	return resolved
}

// resolveTags joins tag links against the catalog, grouped by entry ID.
func resolveTags(links []models.EntryTag, catalog []models.Tag) map[string][]models.Tag {
	byID := make(map[string]models.Tag, len(catalog))
	for _, t := range catalog {
		byID[t.ID] = t
	}

	resolved := make(map[string][]models.Tag)
	for _, link := range links {
		tag, ok := byID[link.TagID]
		if !ok {
			logger.Debug("Skipping dangling tag link", "entry", link.EntryID, "tag", link.TagID)
			continue
		}
		resolved[link.EntryID] = append(resolved[link.EntryID], tag)
	}
	return resolved
}

// MoodDistribution counts mood occurrences per category across entries. An
// entry with several moods contributes once per mood. Every category is
// present in the result, zero when unused.
func MoodDistribution(entries []models.Entry, moodsByEntry map[string][]models.Mood) map[models.MoodCategory]int {
	dist := make(map[models.MoodCategory]int, len(models.MoodCategories))
	for _, c := range models.MoodCategories {
		dist[c] = 0
	}

	for _, e := range entries {
		for _, m := range moodsByEntry[e.ID] {
			if _, ok := dist[m.Category]; ok {
				dist[m.Category]++
			}
		}
	}
	return dist
}

// TagFrequency ranks tag names by occurrence across entries, most used
// first. Ties keep the order in which names were first seen.
func TagFrequency(entries []models.Entry, tagsByEntry map[string][]models.Tag) []TagCount {
	counts := make(map[string]int)
	var order []string

	for _, e := range entries {
		for _, t := range tagsByEntry[e.ID] {
			if _, ok := counts[t.Name]; !ok {
				order = append(order, t.Name)
			}
			counts[t.Name]++
		}
	}

	ranking := make([]TagCount, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, TagCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	return ranking
}

// MostFrequentMood describes the category with the most mood occurrences.
// Ties go to the category listed first in models.MoodCategories.
func MostFrequentMood(dist map[models.MoodCategory]int) string {
	var best models.MoodCategory
	bestCount := 0
	for _, c := range models.MoodCategories {
		if dist[c] > bestCount {
			best, bestCount = c, dist[c]
		}
	}
	if bestCount == 0 {
		return constants.NoMoodsRecorded
	}
	return fmt.Sprintf("%s (%d entries)", best, bestCount)
}

// MostUsedTags renders the first limit rows of a ranking as "name (count)".
func MostUsedTags(ranking []TagCount, limit int) []string {
	if limit > len(ranking) {
		limit = len(ranking)
	}
	tags := make([]string, 0, limit)
	for _, tc := range ranking[:limit] {
		tags = append(tags, fmt.Sprintf("%s (%d)", tc.Name, tc.Count))
	}
	return tags
}
