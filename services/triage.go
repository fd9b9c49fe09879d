package services

import "strings"

// TriageRule maps symptom keywords to a likely issue and what to do about it.
type TriageRule struct {
	ID                string   `json:"id"`
	Keywords          []string `json:"-"`
	LikelyIssue       string   `json:"likelyIssue"`
	Urgency           string   `json:"urgency"`
	Advice            string   `json:"advice"`
	RecommendedAction string   `json:"recommendedAction"`
}

type TriageMatch struct {
	LikelyIssue       string `json:"likelyIssue"`
	Urgency           string `json:"urgency"`
	Advice            string `json:"advice"`
	RecommendedAction string `json:"recommendedAction"`
}

var triageRules = []TriageRule{
	{
		ID:                "brake_squeal",
		Keywords:          []string{"brake", "squeak", "squealing", "screech"},
		LikelyIssue:       "Brake pad wear or rotor issue",
		Urgency:           "HIGH",
		Advice:            "Avoid high speeds and hard braking. Book a brake inspection as soon as possible.",
		RecommendedAction: "SERVICE_SOON",
	},
	{
		ID:                "engine_overheat",
		Keywords:          []string{"overheat", "smoke", "steam", "temperature high"},
		LikelyIssue:       "Engine overheating / coolant issue",
		Urgency:           "CRITICAL",
		Advice:            "Stop driving immediately and request breakdown support.",
		RecommendedAction: "BREAKDOWN",
	},
	{
		ID:                "pulling_side",
		Keywords:          []string{"pulling", "pulls", "alignment"},
		LikelyIssue:       "Wheel alignment or tyre pressure issue",
		Urgency:           "MEDIUM",
		Advice:            "Drive carefully and avoid long journeys. Book an alignment check.",
		RecommendedAction: "SERVICE_SOON",
	},
	{
		ID:                "starting_issue",
		Keywords:          []string{"won't start", "no start", "clicking", "battery"},
		LikelyIssue:       "Battery or starter motor problem",
		Urgency:           "MEDIUM",
		Advice:            "Check battery and consider breakdown support if stranded.",
		RecommendedAction: "BREAKDOWN_OR_SERVICE",
	},
}

// TriageSymptom runs the keyword rules over a free-text description.
// Always returns at least one entry (the UNKNOWN fallback).
func TriageSymptom(description string) []TriageMatch {
	text := strings.ToLower(description)
	var matches []TriageMatch

	for _, rule := range triageRules {
		for _, k := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(k)) {
				matches = append(matches, TriageMatch{
					LikelyIssue:       rule.LikelyIssue,
					Urgency:           rule.Urgency,
					Advice:            rule.Advice,
					RecommendedAction: rule.RecommendedAction,
				})
				break
			}
		}
	}

	if len(matches) == 0 {
		matches = append(matches, TriageMatch{
			LikelyIssue:       "Unknown issue",
			Urgency:           "UNKNOWN",
			Advice:            "Unable to classify the symptom. If you feel unsafe, request breakdown assistance. Otherwise, book a diagnostic check.",
			RecommendedAction: "CHECK",
		})
	}
	return matches
}
