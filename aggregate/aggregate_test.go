// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"reflect"
	"testing"

	"github.com/danielhkuo/brew-haha/models"
)

func coffee(id, name string, tags ...string) models.Coffee {
	return models.Coffee{ID: id, Name: name, Tags: tags}
}

func review(userID, coffeeID string, rank int) models.Review {
	return models.Review{UserID: userID, CoffeeID: coffeeID, Rank: rank}
}

func tasting(userID, coffeeID string, tags ...string) models.Tasting {
	return models.Tasting{UserID: userID, CoffeeID: coffeeID, FlavorTags: tags}
}

func TestReviewSummaries(t *testing.T) {
	coffees := []models.Coffee{coffee("a", "Coffee A"), coffee("b", "Coffee B"), coffee("c", "Coffee C")}
	reviews := []models.Review{
		review("u1", "a", 1),
		review("u1", "b", 2),
		review("u2", "a", 2),
	}

	summaries := ReviewSummaries(coffees, reviews)

	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}

	if summaries[0].ReviewCount != 2 || summaries[0].AvgRank != "1.50" {
		t.Errorf("coffee A: got count=%d avg=%s, want count=2 avg=1.50", summaries[0].ReviewCount, summaries[0].AvgRank)
	}
	if summaries[1].ReviewCount != 1 || summaries[1].AvgRank != "2.00" {
		t.Errorf("coffee B: got count=%d avg=%s, want count=1 avg=2.00", summaries[1].ReviewCount, summaries[1].AvgRank)
	}

	// Zero reviews renders the sentinel, never NaN or a crash
	if summaries[2].ReviewCount != 0 || summaries[2].AvgRank != NoReviewsSentinel {
		t.Errorf("coffee C: got count=%d avg=%s, want count=0 avg=%s", summaries[2].ReviewCount, summaries[2].AvgRank, NoReviewsSentinel)
	}
}

func TestReviewSummaries_EmptyInputs(t *testing.T) {
	if got := ReviewSummaries(nil, nil); len(got) != 0 {
		t.Errorf("expected empty result for empty inputs, got %v", got)
	}

	summaries := ReviewSummaries([]models.Coffee{coffee("a", "A")}, nil)
	if len(summaries) != 1 || summaries[0].AvgRank != NoReviewsSentinel {
		t.Errorf("expected sentinel for reviewless coffee, got %v", summaries)
	}
}

func TestMedalTable_TieBreak(t *testing.T) {
	// Two coffees, two users, mirrored rankings: a perfect tie on firsts,
	// seconds, and weighted score. The coffee ID decides.
	coffees := []models.Coffee{coffee("b", "Coffee B"), coffee("a", "Coffee A")}
	reviews := []models.Review{
		review("u1", "a", 1),
		review("u1", "b", 2),
		review("u2", "b", 1),
		review("u2", "a", 2),
	}

	rows := MedalTable(coffees, reviews)

	for _, row := range rows {
		if row.Firsts != 1 || row.Seconds != 1 || row.Thirds != 0 {
			t.Errorf("%s: got firsts=%d seconds=%d thirds=%d, want 1/1/0", row.Name, row.Firsts, row.Seconds, row.Thirds)
		}
		if row.WeightedScore != 2.5 {
			t.Errorf("%s: got weightedScore=%v, want 2.5", row.Name, row.WeightedScore)
		}
	}

	// Deterministic tie-break: ascending coffee ID
	if rows[0].CoffeeID != "a" || rows[1].CoffeeID != "b" {
		t.Errorf("tie should break by coffee ID: got [%s, %s]", rows[0].CoffeeID, rows[1].CoffeeID)
	}
	if rows[0].Medal != 1 || rows[1].Medal != 2 {
		t.Errorf("expected medals 1 and 2, got %d and %d", rows[0].Medal, rows[1].Medal)
	}
}

func TestMedalTable_PodiumCutoff(t *testing.T) {
	coffees := []models.Coffee{
		coffee("a", "A"), coffee("b", "B"), coffee("c", "C"), coffee("d", "D"),
	}
	reviews := []models.Review{
		review("u1", "a", 1), review("u2", "a", 1), review("u3", "a", 1),
		review("u1", "b", 2), review("u2", "b", 1),
		review("u1", "c", 3), review("u2", "c", 2),
		review("u1", "d", 4), review("u2", "d", 4),
	}

	rows := MedalTable(coffees, reviews)

	if rows[0].CoffeeID != "a" || rows[0].Medal != 1 {
		t.Errorf("expected A gold, got %s medal=%d", rows[0].CoffeeID, rows[0].Medal)
	}
	if rows[1].CoffeeID != "b" || rows[1].Medal != 2 {
		t.Errorf("expected B silver, got %s medal=%d", rows[1].CoffeeID, rows[1].Medal)
	}
	if rows[2].CoffeeID != "c" || rows[2].Medal != 3 {
		t.Errorf("expected C bronze, got %s medal=%d", rows[2].CoffeeID, rows[2].Medal)
	}
	// No medal below rank 3
	if rows[3].Medal != 0 {
		t.Errorf("expected no medal for fourth place, got %d", rows[3].Medal)
	}

	// Ranks outside the podium still count toward the review total but
	// contribute no points.
	if rows[3].ReviewCount != 2 || rows[3].WeightedScore != 0 {
		t.Errorf("coffee D: got count=%d score=%v, want count=2 score=0", rows[3].ReviewCount, rows[3].WeightedScore)
	}
}

func TestMedalTable_EveryReviewCountsOnce(t *testing.T) {
	coffees := []models.Coffee{coffee("a", "A"), coffee("b", "B")}
	reviews := []models.Review{
		review("u1", "a", 1), review("u1", "b", 2),
		review("u2", "a", 2), review("u2", "b", 1),
		review("u3", "a", 3), review("u3", "b", 5),
	}

	rows := MedalTable(coffees, reviews)

	totalFirsts := 0
	for _, row := range rows {
		totalFirsts += row.Firsts
		podium := row.Firsts + row.Seconds + row.Thirds
		if podium > row.ReviewCount {
			t.Errorf("%s: podium tally %d exceeds review count %d", row.Name, podium, row.ReviewCount)
		}
	}
	if totalFirsts > len(reviews) {
		t.Errorf("sum of firsts %d exceeds total reviews %d", totalFirsts, len(reviews))
	}
}

func TestMedalTable_Empty(t *testing.T) {
	rows := MedalTable(nil, nil)
	if len(rows) != 0 {
		t.Errorf("expected empty table, got %v", rows)
	}

	rows = MedalTable([]models.Coffee{coffee("a", "A")}, nil)
	if len(rows) != 1 || rows[0].WeightedScore != 0 || rows[0].Medal != 1 {
		t.Errorf("reviewless coffee should score 0 but still top an empty field: %+v", rows)
	}
}

func TestFlavorHistogram(t *testing.T) {
	tastings := []models.Tasting{
		tasting("u1", "a", "fruity", "bright"),
		tasting("u2", "a", "bright", "bold"),
	}

	hist := FlavorHistogram(tastings, "a")

	want := []FlavorCount{
		{Tag: "bright", Count: 2},
		{Tag: "fruity", Count: 1},
		{Tag: "bold", Count: 1},
	}
	if !reflect.DeepEqual(hist, want) {
		t.Errorf("got %v, want %v (ties keep encounter order)", hist, want)
	}
}

func TestFlavorHistogram_Scoping(t *testing.T) {
	tastings := []models.Tasting{
		tasting("u1", "a", "fruity"),
		tasting("u1", "b", "nutty"),
		tasting("u2", "b", "nutty", "fruity"),
	}

	all := FlavorHistogram(tastings, "")
	if len(all) != 2 || all[0].Tag != "fruity" || all[0].Count != 2 {
		t.Errorf("unscoped histogram wrong: %v", all)
	}

	scoped := FlavorHistogram(tastings, "b")
	if len(scoped) != 2 || scoped[0].Tag != "nutty" || scoped[0].Count != 2 {
		t.Errorf("scoped histogram wrong: %v", scoped)
	}

	if got := FlavorHistogram(nil, ""); len(got) != 0 {
		t.Errorf("expected empty histogram, got %v", got)
	}
}

func TestFavorites(t *testing.T) {
	reviews := []models.Review{
		review("u1", "a", 1),
		review("u1", "b", 2),
		review("u2", "a", 1),
		review("u2", "b", 2),
	}

	cmp := Favorites(reviews, "u1")

	if cmp.PersonalCoffeeID != "a" {
		t.Errorf("expected personal favorite a, got %s", cmp.PersonalCoffeeID)
	}
	// Crowd: a has mean 1.0, b has mean 2.0
	if cmp.CrowdCoffeeID != "a" {
		t.Errorf("expected crowd favorite a, got %s", cmp.CrowdCoffeeID)
	}
	if !cmp.Matched {
		t.Error("expected matched flag")
	}
}

func TestFavorites_MismatchAndTies(t *testing.T) {
	reviews := []models.Review{
		review("u1", "b", 1),
		review("u1", "a", 2),
		review("u2", "a", 1),
		review("u2", "b", 2),
	}

	// a and b both have mean 1.5; tie breaks to the lower coffee ID.
	cmp := Favorites(reviews, "u1")
	if cmp.CrowdCoffeeID != "a" {
		t.Errorf("tie should break to lowest coffee ID, got %s", cmp.CrowdCoffeeID)
	}
	if cmp.PersonalCoffeeID != "b" {
		t.Errorf("expected personal favorite b, got %s", cmp.PersonalCoffeeID)
	}
	if cmp.Matched {
		t.Error("favorites differ; matched should be false")
	}
}

func TestFavorites_Empty(t *testing.T) {
	cmp := Favorites(nil, "u1")
	if cmp.PersonalCoffeeID != "" || cmp.CrowdCoffeeID != "" || cmp.Matched {
		t.Errorf("empty reviews should yield empty comparison, got %+v", cmp)
	}
}

func TestTagAccuracy(t *testing.T) {
	part := TagAccuracy([]string{"nutty", "balanced"}, []string{"nutty", "bold"})

	if !reflect.DeepEqual(part.Correct, []string{"nutty"}) {
		t.Errorf("correct: got %v, want [nutty]", part.Correct)
	}
	if !reflect.DeepEqual(part.Missed, []string{"balanced"}) {
		t.Errorf("missed: got %v, want [balanced]", part.Missed)
	}
	if !reflect.DeepEqual(part.Extra, []string{"bold"}) {
		t.Errorf("extra: got %v, want [bold]", part.Extra)
	}
}

func TestTagAccuracy_PartitionProperties(t *testing.T) {
	official := []string{"fruity", "bright", "citrus"}
	submitted := []string{"bright", "smoky", "fruity"}

	part := TagAccuracy(official, submitted)

	// correct ∪ missed = official, correct ∪ extra = submitted
	reunion := append(append([]string{}, part.Correct...), part.Missed...)
	if len(reunion) != len(official) {
		t.Errorf("correct+missed should cover official tags: %v vs %v", reunion, official)
	}
	reunion = append(append([]string{}, part.Correct...), part.Extra...)
	if len(reunion) != len(submitted) {
		t.Errorf("correct+extra should cover submitted tags: %v vs %v", reunion, submitted)
	}

	// Disjoint
	inCorrect := toSet(part.Correct)
	for _, tag := range part.Missed {
		if inCorrect[tag] {
			t.Errorf("tag %s in both correct and missed", tag)
		}
	}
	for _, tag := range part.Extra {
		if inCorrect[tag] {
			t.Errorf("tag %s in both correct and extra", tag)
		}
	}
}

func TestTagAccuracy_EmptyAndDuplicates(t *testing.T) {
	part := TagAccuracy(nil, nil)
	if len(part.Correct)+len(part.Missed)+len(part.Extra) != 0 {
		t.Errorf("empty inputs should yield empty partition, got %+v", part)
	}

	part = TagAccuracy([]string{"nutty", "nutty"}, []string{"bold", "bold", "nutty"})
	if !reflect.DeepEqual(part.Correct, []string{"nutty"}) || !reflect.DeepEqual(part.Extra, []string{"bold"}) {
		t.Errorf("duplicates should collapse, got %+v", part)
	}
}
