package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mauv0809/courtside/internal/analytics"
	"github.com/mauv0809/courtside/internal/team"
	"github.com/mauv0809/courtside/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	from string
	to   string
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func init() {
	overviewCmd.Flags().StringVar(&from, "from", "", "First day, YYYY-MM-DD")
	overviewCmd.Flags().StringVar(&to, "to", "", "Last day, YYYY-MM-DD")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(trackerCmd)
}

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return request(http.MethodGet, "/health", nil, nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return request(http.MethodGet, "/metrics", nil, nil)
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show persisted usage counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		var usage map[string]int
		if err := request(http.MethodGet, "/usage", nil, &usage); err != nil || raw {
			return err
		}
		rows := make([][]string, 0, len(usage))
		for k, v := range usage {
			rows = append(rows, []string{k, strconv.Itoa(v)})
		}
		fmt.Println(render([]string{"Key", "Count"}, rows))
		return nil
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List your teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		var teams []team.Team
		if err := request(http.MethodGet, "/teams", nil, &teams); err != nil || raw {
			return err
		}
		rows := make([][]string, 0, len(teams))
		for _, t := range teams {
			rows = append(rows, []string{t.Slug, t.Name, t.Description})
		}
		fmt.Println(render([]string{"Slug", "Name", "Description"}, rows))
		return nil
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games <team>",
	Short: "List the games of a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var games []team.Game
		if err := request(http.MethodGet, "/teams/"+args[0]+"/games", nil, &games); err != nil || raw {
			return err
		}
		rows := make([][]string, 0, len(games))
		for _, g := range games {
			score := "-"
			if g.Scored() {
				score = fmt.Sprintf("%d - %d", *g.TeamScore, *g.OpponentScore)
			}
			rows = append(rows, []string{g.Date.Format(analytics.DateLayout), g.Title, score, g.Slug})
		}
		fmt.Println(render([]string{"Date", "Title", "Score", "Slug"}, rows))
		return nil
	},
}

var overviewCmd = &cobra.Command{
	Use:   "overview <team>",
	Short: "Show the season overview of a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/teams/" + args[0] + "/overview"
		if from != "" || to != "" {
			endpoint += "?from=" + from + "&to=" + to
		}
		var overview analytics.Overview
		if err := request(http.MethodGet, endpoint, nil, &overview); err != nil || raw {
			return err
		}
		if overview.Empty {
			fmt.Println("No scored games yet.")
			return nil
		}

		g, s := overview.Games, overview.Totals
		fmt.Println(titleStyle.Render(fmt.Sprintf("%d games, %d wins, %d losses (%.0f%%)", g.TotalGames, g.Wins, g.Loses, g.WinPercentage)))
		fmt.Println(render([]string{"Stat", "Value"}, [][]string{
			{"Kills", strconv.Itoa(s.Kills)},
			{"Attack efficiency", fmt.Sprintf("%.2f", s.AttackEfficiency)},
			{"Aces", strconv.Itoa(s.Aces)},
			{"Serve efficiency", fmt.Sprintf("%.2f", s.ServeEfficiency)},
			{"Blocks", strconv.Itoa(s.Blocks)},
			{"Digs", strconv.Itoa(s.Digs)},
			{"Receive %", fmt.Sprintf("%.2f", s.ReceivePercentage)},
		}))
		fmt.Println(leaderboardTable(overview.Leaderboard))
		return nil
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <team>",
	Short: "Show the top players of a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []analytics.LeaderboardEntry
		if err := request(http.MethodGet, "/teams/"+args[0]+"/leaderboard", nil, &entries); err != nil || raw {
			return err
		}
		fmt.Println(leaderboardTable(entries))
		return nil
	},
}

func leaderboardTable(entries []analytics.LeaderboardEntry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Name,
			strconv.Itoa(e.Kills),
			strconv.Itoa(e.Blocks),
			strconv.Itoa(e.ServeAces),
			strconv.Itoa(e.Digs),
			strconv.Itoa(e.SetAssists),
			fmt.Sprintf("%.2f", e.Score),
		})
	}
	return render([]string{"#", "Player", "Kills", "Blocks", "Aces", "Digs", "Assists", "Score"}, rows)
}

var trackerCmd = &cobra.Command{
	Use:   "tracker <session>",
	Short: "Show the court of an open tracker session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var view tracker.View
		if err := request(http.MethodGet, "/tracker/"+args[0]+"/", nil, &view); err != nil || raw {
			return err
		}
		rows := make([][]string, 0, len(view.Slots)+len(view.Bench))
		for _, s := range view.Slots {
			marker := ""
			if s.Selected {
				marker = "*"
			}
			rows = append(rows, []string{fmt.Sprintf("Slot %d%s", s.Index+1, marker), s.Name})
		}
		for _, b := range view.Bench {
			marker := ""
			if b.Selected {
				marker = "*"
			}
			rows = append(rows, []string{"Bench" + marker, b.Name})
		}
		fmt.Println(render([]string{"Position", "Player"}, rows))
		if view.Dirty {
			fmt.Println("Unsaved changes.")
		}
		return nil
	},
}
