// Command scorer is the courtside scoring terminal. It hosts a live
// scoring session for one match, persists the state after every point so
// an interrupted session can be resumed, and submits the final result to
// the league API when the operator confirms the end of the match.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/StNick/squash-team-challenge/internal/config"
	"github.com/StNick/squash-team-challenge/internal/domain/scorestate"
	"github.com/StNick/squash-team-challenge/internal/infrastructure/scoreapi"
	"github.com/StNick/squash-team-challenge/internal/platform/kv"
	"github.com/StNick/squash-team-challenge/internal/platform/logging"
	"github.com/StNick/squash-team-challenge/internal/platform/resilience"
	"github.com/StNick/squash-team-challenge/internal/scoring"
)

func main() {
	matchID := flag.Int64("match", 0, "match id to score (required)")
	playerA := flag.String("player-a", "Player A", "name of player A")
	playerB := flag.String("player-b", "Player B", "name of player B")
	colorA := flag.String("color-a", "", "team color of player A")
	colorB := flag.String("color-b", "", "team color of player B")
	verbose := flag.Bool("verbose", false, "emit structured logs to stdout")
	flag.Parse()

	if *matchID <= 0 {
		fmt.Fprintln(os.Stderr, "usage: scorer -match <id> [-player-a NAME] [-player-b NAME]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewNop()
	if *verbose {
		logger = logging.NewJSON(cfg.LogLevel)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger, *matchID,
		scorestate.PlayerInfo{Name: *playerA, TeamColor: *colorA},
		scorestate.PlayerInfo{Name: *playerB, TeamColor: *colorB},
	); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger, matchID int64, playerA, playerB scorestate.PlayerInfo) error {
	store, err := kv.NewFileStore(cfg.SessionDir)
	if err != nil {
		return fmt.Errorf("open session dir %s: %w", cfg.SessionDir, err)
	}

	sessions := scoring.NewSessionStore(store, logger)
	if removed, err := sessions.SweepExpired(); err != nil {
		logger.Warn("sweep expired sessions", "error", err)
	} else if removed > 0 {
		fmt.Printf("cleaned up %d expired session(s)\n", removed)
	}

	client, err := scoreapi.New(scoreapi.Config{
		BaseURL: cfg.ScoreAPIBaseURL,
		Timeout: cfg.ScoreAPITimeout,
		Retries: cfg.ScoreAPIMaxRetries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScoreAPICircuitEnabled,
			FailureThreshold: cfg.ScoreAPICircuitFailureCount,
			OpenTimeout:      cfg.ScoreAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ScoreAPICircuitHalfOpenMaxRq,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create score api client: %w", err)
	}

	controller := scoring.NewController(matchID, playerA, playerB, sessions, client,
		scoring.WithLogger(logger))
	defer controller.Close()

	printSuggestedHandicap(client, matchID)

	ui := &consoleUI{
		controller: controller,
		in:         bufio.NewScanner(os.Stdin),
		out:        os.Stdout,
	}
	return ui.loop()
}

// printSuggestedHandicap is advisory; the session proceeds either way.
func printSuggestedHandicap(client *scoreapi.Client, matchID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	suggestion, err := client.SuggestedHandicap(ctx, matchID)
	if err != nil {
		fmt.Printf("suggested handicap unavailable: %v\n", err)
		return
	}
	fmt.Printf("suggested handicap: %d (levels %d vs %d)\n",
		suggestion.Suggested, suggestion.LevelA, suggestion.LevelB)
}

type consoleUI struct {
	controller *scoring.Controller
	in         *bufio.Scanner
	out        *os.File
}

func (ui *consoleUI) loop() error {
	if ui.controller.Start() == scoring.PhaseResumePrompt {
		if err := ui.resumePrompt(); err != nil {
			return err
		}
	}

	ui.printState()
	ui.printHelp()

	for ui.controller.Phase() != scoring.PhaseClosed {
		fmt.Fprint(ui.out, ui.prompt())
		if !ui.in.Scan() {
			ui.controller.Close()
			break
		}

		input := strings.ToLower(strings.TrimSpace(ui.in.Text()))
		if input == "" {
			continue
		}
		if ui.controller.Phase() == scoring.PhaseConfirmEnd {
			ui.handleConfirm(input)
			continue
		}
		ui.handleScoring(input)
	}
	return ui.in.Err()
}

func (ui *consoleUI) resumePrompt() error {
	saved := ui.controller.PendingSession()
	fmt.Fprintf(ui.out, "found a saved session from %s at %d-%d. resume? [y/n] ",
		saved.SavedTime().Format("15:04"), saved.State.ScoreA, saved.State.ScoreB)

	for ui.in.Scan() {
		switch strings.ToLower(strings.TrimSpace(ui.in.Text())) {
		case "y", "yes":
			ui.controller.Resume()
			return nil
		case "n", "no":
			ui.controller.StartFresh()
			return nil
		default:
			fmt.Fprint(ui.out, "resume? [y/n] ")
		}
	}
	ui.controller.Close()
	return ui.in.Err()
}

func (ui *consoleUI) handleScoring(input string) {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "a":
		err = ui.controller.ScorePoint(scorestate.SideA)
	case "b":
		err = ui.controller.ScorePoint(scorestate.SideB)
	case "u", "undo":
		err = ui.controller.Undo()
	case "box":
		err = ui.selectBox(args)
	case "server":
		err = ui.setServer(args)
	case "end":
		err = ui.controller.RequestEnd()
		if err == nil {
			state := ui.controller.State()
			fmt.Fprintf(ui.out, "submit final score %d-%d? [y/n] ", state.ScoreA, state.ScoreB)
			return
		}
	case "q", "quit":
		ui.controller.Close()
		fmt.Fprintln(ui.out, "session saved, bye")
		return
	case "h", "help":
		ui.printHelp()
		return
	default:
		fmt.Fprintf(ui.out, "unknown command %q (h for help)\n", cmd)
		return
	}

	if err != nil {
		fmt.Fprintln(ui.out, err)
		return
	}
	ui.printState()
}

func (ui *consoleUI) handleConfirm(input string) {
	switch input {
	case "y", "yes":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := ui.controller.ConfirmEnd(ctx); err != nil {
			fmt.Fprintf(ui.out, "submission failed: %v\n", err)
			fmt.Fprint(ui.out, "retry? [y/n] ")
			return
		}
		state := ui.controller.State()
		fmt.Fprintf(ui.out, "final score %d-%d submitted\n", state.ScoreA, state.ScoreB)
	case "n", "no":
		if err := ui.controller.CancelEnd(); err != nil {
			fmt.Fprintln(ui.out, err)
			return
		}
		ui.printState()
	default:
		fmt.Fprint(ui.out, "submit? [y/n] ")
	}
}

func (ui *consoleUI) selectBox(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: box <l|r>")
	}
	box, err := scorestate.ParseBox(args[0])
	if err != nil {
		return err
	}
	return ui.controller.SelectServiceBox(box)
}

func (ui *consoleUI) setServer(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: server <a|b>")
	}
	side, err := scorestate.ParseSide(args[0])
	if err != nil {
		return err
	}
	return ui.controller.SetServer(side)
}

func (ui *consoleUI) printState() {
	state := ui.controller.State()

	serving := state.PlayerA.Name
	if state.Server == scorestate.SideB {
		serving = state.PlayerB.Name
	}
	handout := ""
	if state.IsHandout {
		handout = ", handout"
	}
	fmt.Fprintf(ui.out, "\n  %s %d - %d %s\n", state.PlayerA.Name, state.ScoreA, state.ScoreB, state.PlayerB.Name)
	fmt.Fprintf(ui.out, "  serving: %s from %s%s | elapsed %s\n",
		serving, boxLabel(state.ServiceBox), handout, state.Elapsed(time.Now()).Round(time.Second))
}

func (ui *consoleUI) printHelp() {
	fmt.Fprintln(ui.out, `commands:
  a / b        point for player A / B
  u            undo last point
  box l|r      set service box
  server a|b   set the server
  end          finish the match and submit the score
  q            quit (session stays saved)`)
}

func (ui *consoleUI) prompt() string {
	if ui.controller.Phase() == scoring.PhaseConfirmEnd {
		return "confirm> "
	}
	return "> "
}

func boxLabel(box scorestate.Box) string {
	if box == scorestate.BoxLeft {
		return "left"
	}
	return "right"
}
