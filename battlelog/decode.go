package battlelog

import (
	"encoding/json"
	"os"
)

// rawEntry mirrors Entry with pointer fields so missing keys can be told
// apart from empty values.
type rawEntry struct {
	Species *string    `json:"species"`
	Item    *string    `json:"item"`
	Ability *string    `json:"ability"`
	Nature  *string    `json:"nature"`
	Moves   *[]*string `json:"moves"`
}

type rawRecord struct {
	Winner        *string      `json:"winner"`
	Player1       *string      `json:"p1"`
	Player2       *string      `json:"p2"`
	Player1Team   *[]*rawEntry `json:"p1team"`
	Player2Team   *[]*rawEntry `json:"p2team"`
	Player1Rating *float64     `json:"p1rating"`
	Player2Rating *float64     `json:"p2rating"`
	Timestamp     *string      `json:"timestamp"`
}

// ReadRecord reads and validates a single battle log file. It returns false
// when the file cannot be read, is not JSON, or does not match the log schema.
func ReadRecord(path string) (MatchRecord, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MatchRecord{}, false
	}
	return DecodeRecord(data)
}

// DecodeRecord validates raw JSON against the battle log schema. Every field
// is required; unknown fields are ignored.
func DecodeRecord(data []byte) (MatchRecord, bool) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return MatchRecord{}, false
	}
	if raw.Winner == nil || raw.Player1 == nil || raw.Player2 == nil ||
		raw.Player1Rating == nil || raw.Player2Rating == nil || raw.Timestamp == nil {
		return MatchRecord{}, false
	}

	p1team, ok := decodeTeam(raw.Player1Team)
	if !ok {
		return MatchRecord{}, false
	}
	p2team, ok := decodeTeam(raw.Player2Team)
	if !ok {
		return MatchRecord{}, false
	}

	return MatchRecord{
		Winner:        *raw.Winner,
		Player1:       *raw.Player1,
		Player2:       *raw.Player2,
		Player1Team:   p1team,
		Player2Team:   p2team,
		Player1Rating: *raw.Player1Rating,
		Player2Rating: *raw.Player2Rating,
		Timestamp:     *raw.Timestamp,
	}, true
}

func decodeTeam(raw *[]*rawEntry) ([]Entry, bool) {
	if raw == nil {
		return nil, false
	}
	team := make([]Entry, 0, len(*raw))
	for _, e := range *raw {
		if e == nil || e.Species == nil || e.Item == nil || e.Ability == nil ||
			e.Nature == nil || e.Moves == nil {
			return nil, false
		}
		moves := make([]string, 0, len(*e.Moves))
		for _, m := range *e.Moves {
			if m == nil {
				return nil, false
			}
			moves = append(moves, *m)
		}
		team = append(team, Entry{
			Species: *e.Species,
			Item:    *e.Item,
			Ability: *e.Ability,
			Nature:  *e.Nature,
			Moves:   moves,
		})
	}
	return team, true
}
