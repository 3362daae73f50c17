// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - ClaimNameRequest: name
  - RecordTastingRequest: user_id, coffee_id, flavor_tags, emoji, note
  - SubmitRankingRequest: ranked (ordered coffee IDs), would_drink_again
  - QuizAnswersRequest: answers
  - AdminLoginRequest: password
  - CoffeeRequest, FlavorTagRequest, PastryRequest: admin record writes
  - PastryFeedbackRequest: user_id, user_name, feedback

# Response Types

Types for JSON responses:

  - ClaimNameResponse: user
  - AdminLoginResponse: admin_token
  - ProgressResponse: tasted_count, coffee_count, reviewed
  - SubmitRankingResponse: reviews
  - RecommendationResponse: coffee
  - ErrorResponse: error, message

# Domain Types

Persisted rows:

  - Coffee: name, description, tag set, panel notes
  - User: unique display name and creation time
  - Tasting: one user's notes for one coffee (unique per pair)
  - Review: one rank assignment within a user's ordering
  - FlavorTag: admin-managed tag vocabulary
  - Pastry, PastryFeedback: the pastry side quest

# Tag Encoding

Coffee tags and tasting flavor tags are stored as JSON-encoded TEXT so the
schema is identical under both supported drivers:

	col := models.EncodeTags([]string{"fruity", "bright"})
	tags := models.DecodeTags(col)

Tags are free strings; they are not foreign keys into flavor_tag. Renaming a
FlavorTag does not rewrite coffees or tastings that used the old name.
*/
package models
