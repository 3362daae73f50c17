// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/danielhkuo/brew-haha/models"
)

// NoReviewsSentinel is reported as the average rank of a coffee nobody
// has reviewed yet.
const NoReviewsSentinel = "—"

// Medal weight per place: 3 points for a first, 2 for a second, 1 for a third.
const (
	firstPlacePoints  = 3
	secondPlacePoints = 2
	thirdPlacePoints  = 1
)

// ReviewSummary is one coffee's review count and mean rank.
type ReviewSummary struct {
	CoffeeID    string `json:"coffee_id"`
	Name        string `json:"name"`
	ReviewCount int    `json:"review_count"`
	AvgRank     string `json:"avg_rank"`
}

// MedalRow is one coffee's medal tally on the leaderboard.
// Medal is 1/2/3 for gold/silver/bronze, 0 below the podium.
type MedalRow struct {
	CoffeeID      string  `json:"coffee_id"`
	Name          string  `json:"name"`
	Firsts        int     `json:"firsts"`
	Seconds       int     `json:"seconds"`
	Thirds        int     `json:"thirds"`
	ReviewCount   int     `json:"review_count"`
	WeightedScore float64 `json:"weighted_score"`
	Medal         int     `json:"medal"`
}

// FlavorCount is one tag's frequency in the histogram.
type FlavorCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// FavoriteComparison pairs a user's top pick with the crowd's.
type FavoriteComparison struct {
	PersonalCoffeeID string `json:"personal_coffee_id"`
	CrowdCoffeeID    string `json:"crowd_coffee_id"`
	Matched          bool   `json:"matched"`
}

// TagPartition splits a coffee's official tag set against a user's
// submitted tags. Correct and Missed follow official-tag order, Extra
// follows the user's order. The partition is exhaustive and disjoint.
type TagPartition struct {
	Correct []string `json:"correct"`
	Missed  []string `json:"missed"`
	Extra   []string `json:"extra"`
}

// ReviewSummaries computes per-coffee review counts and mean ranks.
// Output follows coffee input order. Coffees without reviews report the
// sentinel average instead of NaN.
func ReviewSummaries(coffees []models.Coffee, reviews []models.Review) []ReviewSummary {
	summaries := make([]ReviewSummary, 0, len(coffees))
	for _, c := range coffees {
		count := 0
		sum := 0
		for _, r := range reviews {
			if r.CoffeeID == c.ID {
				count++
				sum += r.Rank
			}
		}

		avg := NoReviewsSentinel
		if count > 0 {
			avg = fmt.Sprintf("%.2f", float64(sum)/float64(count))
		}

		summaries = append(summaries, ReviewSummary{
			CoffeeID:    c.ID,
			Name:        c.Name,
			ReviewCount: count,
			AvgRank:     avg,
		})
	}
	return summaries
}

// MedalTable tallies podium finishes per coffee and ranks the field.
//
// weightedScore = (3*firsts + 2*seconds + thirds) / totalReviews, rounded
// to 2 decimals, 0 with no reviews. Sort order is descending by firsts,
// then descending weightedScore, then ascending coffee ID so equal rows
// order deterministically. Only the top three rows carry a medal.
func MedalTable(coffees []models.Coffee, reviews []models.Review) []MedalRow {
	rows := make([]MedalRow, 0, len(coffees))
	for _, c := range coffees {
		row := MedalRow{CoffeeID: c.ID, Name: c.Name}
		points := 0
		for _, r := range reviews {
			if r.CoffeeID != c.ID {
				continue
			}
			row.ReviewCount++
			switch r.Rank {
			case 1:
				row.Firsts++
				points += firstPlacePoints
			case 2:
				row.Seconds++
				points += secondPlacePoints
			case 3:
				row.Thirds++
				points += thirdPlacePoints
			}
		}
		if row.ReviewCount > 0 {
			row.WeightedScore = round2(float64(points) / float64(row.ReviewCount))
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		// 1. More first-place votes wins
		if a.Firsts != b.Firsts {
			return a.Firsts > b.Firsts
		}

		// 2. Higher weighted score wins
		if a.WeightedScore != b.WeightedScore {
			return a.WeightedScore > b.WeightedScore
		}

		// 3. Stable tie-breaking by coffee ID (ascending)
		return a.CoffeeID < b.CoffeeID
	})

	for i := range rows {
		if i < 3 {
			rows[i].Medal = i + 1
		}
	}

	return rows
}

// FlavorHistogram counts tag frequency across tastings. A non-empty
// coffeeID scopes the histogram to that coffee. Sorted descending by
// count; ties keep first-encounter order.
func FlavorHistogram(tastings []models.Tasting, coffeeID string) []FlavorCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, t := range tastings {
		if coffeeID != "" && t.CoffeeID != coffeeID {
			continue
		}
		for _, tag := range t.FlavorTags {
			if _, seen := counts[tag]; !seen {
				firstSeen[tag] = order
				order++
			}
			counts[tag]++
		}
	}

	hist := make([]FlavorCount, 0, len(counts))
	for tag, count := range counts {
		hist = append(hist, FlavorCount{Tag: tag, Count: count})
	}

	sort.Slice(hist, func(i, j int) bool {
		if hist[i].Count != hist[j].Count {
			return hist[i].Count > hist[j].Count
		}
		return firstSeen[hist[i].Tag] < firstSeen[hist[j].Tag]
	})

	return hist
}

// Favorites compares one user's top-ranked coffee against the crowd
// favorite (lowest mean rank across all reviews, ties broken by
// ascending coffee ID). Empty IDs mean the corresponding side has no
// reviews yet.
func Favorites(reviews []models.Review, userID string) FavoriteComparison {
	var cmp FavoriteComparison

	// Personal favorite: the user's best (lowest) rank.
	bestRank := 0
	for _, r := range reviews {
		if r.UserID != userID {
			continue
		}
		if bestRank == 0 || r.Rank < bestRank || (r.Rank == bestRank && r.CoffeeID < cmp.PersonalCoffeeID) {
			bestRank = r.Rank
			cmp.PersonalCoffeeID = r.CoffeeID
		}
	}

	// Crowd favorite: lowest mean rank over everyone's reviews.
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range reviews {
		sums[r.CoffeeID] += r.Rank
		counts[r.CoffeeID]++
	}

	bestAvg := math.Inf(1)
	for coffeeID, count := range counts {
		avg := float64(sums[coffeeID]) / float64(count)
		if avg < bestAvg || (avg == bestAvg && coffeeID < cmp.CrowdCoffeeID) {
			bestAvg = avg
			cmp.CrowdCoffeeID = coffeeID
		}
	}

	cmp.Matched = cmp.PersonalCoffeeID != "" && cmp.PersonalCoffeeID == cmp.CrowdCoffeeID
	return cmp
}

// TagAccuracy partitions official against submitted tags. Duplicates in
// either input are collapsed.
func TagAccuracy(official, submitted []string) TagPartition {
	part := TagPartition{
		Correct: []string{},
		Missed:  []string{},
		Extra:   []string{},
	}

	officialSet := toSet(official)
	submittedSet := toSet(submitted)

	seen := make(map[string]bool)
	for _, tag := range official {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		if submittedSet[tag] {
			part.Correct = append(part.Correct, tag)
		} else {
			part.Missed = append(part.Missed, tag)
		}
	}

	seen = make(map[string]bool)
	for _, tag := range submitted {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		if !officialSet[tag] {
			part.Extra = append(part.Extra, tag)
		}
	}

	return part
}

func toSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		set[tag] = true
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
