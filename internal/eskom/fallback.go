package eskom

import (
	"strings"
	"time"
)

// fallbackAreas is the fixed set of recognized areas served when the
// provider is unreachable.
var fallbackAreas = []AreaInfo{
	{ID: "eskde-4-sandton-sandton", Name: "Sandton, Johannesburg", Region: "Gauteng"},
	{ID: "eskde-10-pretoriacentral", Name: "Pretoria Central", Region: "Gauteng"},
	{ID: "eskde-11-cape-town-cbd", Name: "Cape Town CBD", Region: "Western Cape"},
	{ID: "eskde-6-durban-central", Name: "Durban Central", Region: "KwaZulu-Natal"},
	{ID: "eskde-8-springs", Name: "Springs", Region: "Gauteng"},
}

// FallbackAreas filters the fixed area list case-insensitively against
// name and region.
func FallbackAreas(searchText string) []AreaInfo {
	needle := strings.ToLower(searchText)
	matches := make([]AreaInfo, 0, len(fallbackAreas))
	for _, area := range fallbackAreas {
		if strings.Contains(strings.ToLower(area.Name), needle) ||
			strings.Contains(strings.ToLower(area.Region), needle) {
			matches = append(matches, area)
		}
	}
	return matches
}

// FallbackStatus returns the canned status for recognized area ids, or a
// generic default for everything else.
func FallbackStatus(areaID string) Status {
	today := time.Now().Format("2006-01-02")
	now := time.Now().Format(time.RFC3339)

	if areaID == "eskde-4-sandton-sandton" {
		return Status{
			Area: "Sandton, Johannesburg",
			Schedule: []Schedule{{
				Day: today,
				Stages: []StageSchedule{
					{Stage: 1, Times: []string{"00:00-02:30", "08:00-10:30", "16:00-18:30"}},
					{Stage: 2, Times: []string{"00:00-02:30", "08:00-12:30", "16:00-20:30"}},
					{Stage: 3, Times: []string{"00:00-04:30", "08:00-12:30", "16:00-20:30"}},
				},
			}},
			CurrentStage: 2,
			NextStage:    3,
			Updated:      now,
		}
	}

	return Status{
		Area: "Your Area",
		Schedule: []Schedule{{
			Day: today,
			Stages: []StageSchedule{
				{Stage: 1, Times: []string{"06:00-08:30", "14:00-16:30", "22:00-00:30"}},
				{Stage: 2, Times: []string{"06:00-10:30", "14:00-18:30", "22:00-02:30"}},
				{Stage: 3, Times: []string{"06:00-12:30", "14:00-20:30", "22:00-04:30"}},
			},
		}},
		CurrentStage: 1,
		NextStage:    2,
		Updated:      now,
	}
}
