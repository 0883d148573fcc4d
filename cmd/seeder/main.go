package main

import (
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/team"
	"github.com/mauv0809/courtside/internal/volleyball"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "courtside.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for _, key := range []string{"DB_NAME", "MIGRATIONS_DIR", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

var roster = []team.NewMember{
	{FirstName: "Ada", LastName: "Lovelace", Role: team.RoleAdmin},
	{FirstName: "Grace", LastName: "Hopper"},
	{FirstName: "Alan", LastName: "Turing"},
	{FirstName: "Edsger", LastName: "Dijkstra"},
	{FirstName: "Barbara", LastName: "Liskov"},
	{FirstName: "Ken", LastName: "Thompson"},
	{FirstName: "Rob", LastName: "Pike"},
	{FirstName: "Frances", LastName: "Allen"},
}

const numGames = 12

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()
	store := team.New(db)

	coach, err := store.CreateUser("Seeder Coach", "coach@courtside.local")
	if err != nil {
		log.Fatalf("Failed to create user: %s", err)
	}
	tm, err := store.CreateTeam("Seeder Spikers", "Demo team created by the seeder")
	if err != nil {
		log.Fatalf("Failed to create team: %s", err)
	}
	for i, m := range roster {
		if i == 0 {
			m.UserID = &coach.ID
		}
		if _, err := store.AddMember(tm.Slug, m); err != nil {
			log.Fatalf("Failed to add member %s %s: %s", m.FirstName, m.LastName, err)
		}
	}
	log.Info("Created team", "team", tm.Slug, "members", len(roster))

	startTime := time.Now()
	for i := range numGames {
		date := time.Now().UTC().AddDate(0, 0, -7*(numGames-i)).Truncate(24 * time.Hour)
		game, err := store.CreateGame(tm.Slug, "Seeded league match", date)
		if err != nil {
			log.Fatalf("Failed to create game: %s", err)
		}
		withRecords, err := store.GetGame(game.Slug)
		if err != nil {
			log.Fatalf("Failed to load game %s: %s", game.Slug, err)
		}
		for j := range withRecords.Records {
			randomize(&withRecords.Records[j].Counters)
		}
		if err := store.SaveStatistics(game.ID, withRecords.Records); err != nil {
			log.Fatalf("Failed to save statistics for %s: %s", game.Slug, err)
		}

		ours, theirs := setScore()
		if _, err := store.SetScore(game.Slug, ours, theirs); err != nil {
			log.Fatalf("Failed to set score for %s: %s", game.Slug, err)
		}
	}

	log.Info("Successfully seeded games.", "games", numGames, "duration", time.Since(startTime))
	log.Info("Use this token with the CLI", "token", coach.APIToken)
}

// setScore returns a best-of-five result in sets.
func setScore() (int, int) {
	loser := rand.IntN(3)
	if rand.IntN(2) == 0 {
		return 3, loser
	}
	return loser, 3
}

func randomize(c *volleyball.Counters) {
	c.SetsPlayed = 3 + rand.IntN(3)
	c.AttackAttempts = rand.IntN(25)
	c.Kills = rand.IntN(c.AttackAttempts + 1)
	c.AttackErrors = rand.IntN(c.AttackAttempts - c.Kills + 1)
	c.ServeAttempts = 6 + rand.IntN(15)
	c.ServeAces = rand.IntN(4)
	c.ServeErrors = rand.IntN(4)
	c.ReceivePerfect = rand.IntN(6)
	c.ReceivePositive = rand.IntN(6)
	c.ReceiveNegative = rand.IntN(4)
	c.ReceiveError = rand.IntN(3)
	c.ReceiveAttempts = c.ReceivePerfect + c.ReceivePositive + c.ReceiveNegative + c.ReceiveError
	c.SetAssists = rand.IntN(20)
	c.Digs = rand.IntN(12)
	c.BlockSingle = rand.IntN(3)
	c.BlockMultiple = rand.IntN(3)
}
