package analytics

// GamesOverview summarises results over a set of games.
type GamesOverview struct {
	Wins          int     `json:"wins"`
	Loses         int     `json:"loses"`
	WinPercentage float64 `json:"winPercentage"`
	TotalGames    int     `json:"totalGames"`
}

// TotalStatistics holds team-wide totals and efficiencies.
type TotalStatistics struct {
	Kills             int     `json:"kills"`
	AttackErrors      int     `json:"attackErrors"`
	AttackAttempts    int     `json:"attackAttempts"`
	AttackEfficiency  float64 `json:"attackEfficiency"`
	Digs              int     `json:"digs"`
	Blocks            int     `json:"blocks"`
	ReceivePercentage float64 `json:"receivePercentage"`
	Aces              int     `json:"aces"`
	ServeErrors       int     `json:"serveErrors"`
	ServeAttempts     int     `json:"serveAttempts"`
	ServeEfficiency   float64 `json:"serveEfficiency"`
}

// LeaderboardEntry is one ranked player.
type LeaderboardEntry struct {
	PlayerID   string  `json:"playerId"`
	Name       string  `json:"name"`
	Kills      int     `json:"kills"`
	Blocks     int     `json:"blocks"`
	ServeAces  int     `json:"serveAces"`
	Digs       int     `json:"digs"`
	SetAssists int     `json:"setAssists"`
	Score      float64 `json:"score"`
}

// ScorePoint compares points won against errors made in one game.
type ScorePoint struct {
	Date   string `json:"date"`
	Scores int    `json:"scores"`
	Errors int    `json:"errors"`
}

// ErrorPoint breaks down the errors of one game.
type ErrorPoint struct {
	Date    string `json:"date"`
	Attack  int    `json:"attack"`
	Receive int    `json:"receive"`
}

// AttackPoint compares attack attempts against attack errors in one game.
type AttackPoint struct {
	Date     string `json:"date"`
	Attempts int    `json:"attempts"`
	Errors   int    `json:"errors"`
}

// Charts holds the per-game series of the overview page.
type Charts struct {
	Scores      []ScorePoint  `json:"scores"`
	Errors      []ErrorPoint  `json:"errors"`
	Attack      []AttackPoint `json:"attack"`
	TotalScores int           `json:"totalScores"`
	TotalErrors int           `json:"totalErrors"`
}

// Overview is everything shown on a team's overview page.
type Overview struct {
	Empty       bool               `json:"empty"`
	Games       GamesOverview      `json:"games"`
	Totals      TotalStatistics    `json:"totals"`
	Charts      Charts             `json:"charts"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// LeaderboardSize is the number of players shown on the leaderboard.
const LeaderboardSize = 5

// DateLayout is the ISO date format used for chart points.
const DateLayout = "2006-01-02"
