package eskom

// Data sources for a lookup result. Fallback marks synthetic data served
// because the upstream provider could not be reached.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

type AreaInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

type StageSchedule struct {
	Stage int      `json:"stage"`
	Times []string `json:"times"`
}

type Schedule struct {
	Day    string          `json:"day"`
	Stages []StageSchedule `json:"stages"`
}

type Status struct {
	Area         string     `json:"area"`
	Schedule     []Schedule `json:"schedule"`
	CurrentStage int        `json:"currentStage,omitempty"`
	NextStage    int        `json:"nextStage,omitempty"`
	Updated      string     `json:"updated,omitempty"`
}

// StatusResult tags a status with its provenance so callers and tests can
// tell real provider data from the canned fallback.
type StatusResult struct {
	Status
	Source         string `json:"source"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// AreasResult tags an area search the same way.
type AreasResult struct {
	Areas          []AreaInfo `json:"areas"`
	Source         string     `json:"source"`
	FallbackReason string     `json:"fallback_reason,omitempty"`
}

// Wire shapes of the EskomSePush business API.

type areasSearchResponse struct {
	Areas []AreaInfo `json:"areas"`
}

type areaResponse struct {
	Area struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Updated string `json:"updated"`
	} `json:"area"`
	Events []struct {
		Stage int    `json:"stage"`
		Note  string `json:"note"`
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"events"`
	Schedule struct {
		Days []struct {
			Date   string     `json:"date"`
			Name   string     `json:"name"`
			Stages [][]string `json:"stages"`
		} `json:"days"`
	} `json:"schedule"`
}
