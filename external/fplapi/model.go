package fplapi

// Wire types for the public FPL endpoints. Only the fields the optimizer reads are decoded.

type bootstrapResponse struct {
	Events   []eventPayload   `json:"events"`
	Teams    []teamPayload    `json:"teams"`
	Elements []elementPayload `json:"elements"`
}

type eventPayload struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	IsCurrent bool   `json:"is_current"`
	IsNext    bool   `json:"is_next"`
	Finished  bool   `json:"finished"`
}

type teamPayload struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type elementPayload struct {
	ID          int    `json:"id"`
	WebName     string `json:"web_name"`
	Team        int    `json:"team"`
	ElementType int    `json:"element_type"`
	NowCost     int64  `json:"now_cost"`
	// ep_next is published as a decimal string, e.g. "4.5".
	EPNext string `json:"ep_next"`
	Status string `json:"status"`
}

type fixturePayload struct {
	ID              int     `json:"id"`
	Event           *int    `json:"event"`
	TeamH           int     `json:"team_h"`
	TeamA           int     `json:"team_a"`
	TeamHDifficulty int     `json:"team_h_difficulty"`
	TeamADifficulty int     `json:"team_a_difficulty"`
	KickoffTime     *string `json:"kickoff_time"`
	Finished        bool    `json:"finished"`
}
