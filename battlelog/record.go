package battlelog

// Entry is one team member's build as written in a battle log.
type Entry struct {
	Species string   `json:"species"`
	Item    string   `json:"item"`
	Ability string   `json:"ability"`
	Nature  string   `json:"nature"`
	Moves   []string `json:"moves"`
}

// MatchRecord is one completed match.
type MatchRecord struct {
	Winner        string  `json:"winner"`
	Player1       string  `json:"p1"`
	Player2       string  `json:"p2"`
	Player1Team   []Entry `json:"p1team"`
	Player2Team   []Entry `json:"p2team"`
	Player1Rating float64 `json:"p1rating"`
	Player2Rating float64 `json:"p2rating"`
	Timestamp     string  `json:"timestamp"`
}
