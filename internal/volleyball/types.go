package volleyball

import "errors"

// ErrUnknownStatKey is returned when a stat key does not name a counter.
var ErrUnknownStatKey = errors.New("unknown stat key")

// StatKey names one box-score counter.
type StatKey string

const (
	Kills           StatKey = "kills"
	AttackErrors    StatKey = "attackErrors"
	AttackAttempts  StatKey = "attackAttempts"
	ServeAces       StatKey = "serveAces"
	ServeErrors     StatKey = "serveErrors"
	ServeAttempts   StatKey = "serveAttempts"
	ReceivePerfect  StatKey = "receivePerfect"
	ReceivePositive StatKey = "receivePositive"
	ReceiveNegative StatKey = "receiveNegative"
	ReceiveError    StatKey = "receiveError"
	ReceiveAttempts StatKey = "receiveAttempts"
	SetAssists      StatKey = "setAssists"
	SetErrors       StatKey = "setErrors"
	Digs            StatKey = "digs"
	DigErrors       StatKey = "digErrors"
	BlockSingle     StatKey = "blockSingle"
	BlockMultiple   StatKey = "blockMultiple"
	BlockErrors     StatKey = "blockErrors"
	SetsPlayed      StatKey = "setsPlayed"
)

// Counters holds the per-game tallies of a single player.
type Counters struct {
	Kills           int `json:"kills" msgpack:"kills"`
	AttackErrors    int `json:"attackErrors" msgpack:"attackErrors"`
	AttackAttempts  int `json:"attackAttempts" msgpack:"attackAttempts"`
	ServeAces       int `json:"serveAces" msgpack:"serveAces"`
	ServeErrors     int `json:"serveErrors" msgpack:"serveErrors"`
	ServeAttempts   int `json:"serveAttempts" msgpack:"serveAttempts"`
	ReceivePerfect  int `json:"receivePerfect" msgpack:"receivePerfect"`
	ReceivePositive int `json:"receivePositive" msgpack:"receivePositive"`
	ReceiveNegative int `json:"receiveNegative" msgpack:"receiveNegative"`
	ReceiveError    int `json:"receiveError" msgpack:"receiveError"`
	ReceiveAttempts int `json:"receiveAttempts" msgpack:"receiveAttempts"`
	SetAssists      int `json:"setAssists" msgpack:"setAssists"`
	SetErrors       int `json:"setErrors" msgpack:"setErrors"`
	Digs            int `json:"digs" msgpack:"digs"`
	DigErrors       int `json:"digErrors" msgpack:"digErrors"`
	BlockSingle     int `json:"blockSingle" msgpack:"blockSingle"`
	BlockMultiple   int `json:"blockMultiple" msgpack:"blockMultiple"`
	BlockErrors     int `json:"blockErrors" msgpack:"blockErrors"`
	SetsPlayed      int `json:"setsPlayed" msgpack:"setsPlayed"`
}

// Record is one roster entry for a single game.
type Record struct {
	ID       string `json:"id" msgpack:"id"`
	MemberID string `json:"memberId" msgpack:"memberId"`
	Name     string `json:"name" msgpack:"name"`
	Counters
}

// Derived holds the computed per-player figures shown next to the raw counters.
type Derived struct {
	AttackEfficiency float64 `json:"attackEfficiency"`
	KillsPerSet      float64 `json:"killsPerSet"`
	ServeEfficiency  float64 `json:"serveEfficiency"`
	ServePercentage  float64 `json:"servePercentage"`
	ReceiveRating    float64 `json:"receiveRating"`
	BlocksPerSet     float64 `json:"blocksPerSet"`
}

// Stat is a display entry of the tracker configuration table.
type Stat struct {
	Key   StatKey `json:"key"`
	Label string  `json:"label"`
}
