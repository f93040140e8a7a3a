package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/ckhausman/blackjack-engine/internal/config"
	"github.com/ckhausman/blackjack-engine/internal/counting"
	"github.com/ckhausman/blackjack-engine/internal/deck"
	"github.com/ckhausman/blackjack-engine/internal/game"
	"github.com/ckhausman/blackjack-engine/internal/hand"
	"github.com/ckhausman/blackjack-engine/internal/stats"
)

// CLI is the flag surface for the interactive trainer REPL: rule variant
// and counting system come from an optional HCL config file, with flags
// overriding individual fields for quick experiments.
type CLI struct {
	Config           string `kong:"help='Path to an HCL rule-set/training config file',default='blackjack-trainer.hcl'"`
	CountingSystem   string `kong:"help='Counting system: hi_lo, ko, omega_ii, wong_halves'"`
	StartingBankroll int64  `kong:"help='Starting bankroll in whole dollars',default='1000'"`
	Seed             *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug            bool   `kong:"help='Enable debug logging'"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("blackjack-trainer"),
		kong.Description("Interactive card-counting and basic-strategy trainer"),
		kong.UsageOnError(),
	)

	level := zerolog.InfoLevel
	if cli.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	rules, err := config.LoadRuleSet(cli.Config)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load rule set")
		kctx.Exit(1)
	}
	trainingCfg, err := config.LoadTrainingConfig(cli.Config)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load training config")
		kctx.Exit(1)
	}
	if cli.CountingSystem != "" {
		trainingCfg.CountingSystem = cli.CountingSystem
	}
	system, ok := counting.ByName(trainingCfg.CountingSystem)
	if !ok {
		logger.Error().Str("system", trainingCfg.CountingSystem).Msg("unknown counting system")
		kctx.Exit(1)
	}

	seed := time.Now().UnixNano()
	if cli.Seed != nil {
		seed = *cli.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	shoe, err := deck.NewShoe(rules.NumDecks, rules.Penetration, rng)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build shoe")
		kctx.Exit(1)
	}
	countState := counting.NewState(system, rules.NumDecks)
	shoe.Subscribe(countState)

	startingBankroll := cli.StartingBankroll * 100
	if startingBankroll <= 0 {
		startingBankroll = trainingCfg.StartingBankrollBig
	}

	sessionLogger := charmlog.New(os.Stderr)
	if cli.Debug {
		sessionLogger.SetLevel(charmlog.DebugLevel)
	}
	sess, engErr := game.NewSession(shoe, countState, rules, startingBankroll, sessionLogger)
	if engErr != nil {
		logger.Error().Err(engErr).Msg("failed to start session")
		kctx.Exit(1)
	}

	agg := stats.NewAggregator()
	sessionID := strconv.FormatInt(seed, 36)
	sess.EventBus().Subscribe(agg.NewRecorder(sessionID))

	logger.Info().
		Int("num_decks", rules.NumDecks).
		Str("counting_system", trainingCfg.CountingSystem).
		Int64("starting_bankroll_cents", startingBankroll).
		Int64("seed", seed).
		Msg("trainer session starting")

	runREPL(sess, countState, shoe, agg, sessionID)
}

// runREPL drives Session.Step from stdin commands, printing a state
// snapshot after every command. It owns no rendering concerns beyond
// plain text, since the transport/session-store/auth surface a richer UI
// would need is out of scope here.
func runREPL(sess *game.Session, countState *counting.State, shoe *deck.Shoe, agg *stats.Aggregator, sessionID string) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("blackjack-trainer: commands are bet <amt>, insure <y|n>, hit, stand, double, split, surrender, new, quit")
	printSnapshot(sess, countState, shoe)

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, ok := parseCommand(fields)
		if !ok {
			fmt.Println("unrecognized command")
			continue
		}
		if fields[0] == "quit" {
			printSessionSummary(agg, sessionID)
			return
		}

		events, engErr := sess.Step(cmd)
		if engErr != nil {
			fmt.Printf("error: %s\n", engErr.Error())
			continue
		}
		for _, e := range events {
			fmt.Printf("  event: %s\n", e.Kind())
		}
		printSnapshot(sess, countState, shoe)
	}
}

func parseCommand(fields []string) (game.Command, bool) {
	switch fields[0] {
	case "bet":
		if len(fields) != 2 {
			return game.Command{}, false
		}
		dollars, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return game.Command{}, false
		}
		return game.PlaceBet(int64(dollars * 100)), true
	case "insure":
		if len(fields) != 2 {
			return game.Command{}, false
		}
		return game.Insurance(fields[1] == "y"), true
	case "hit":
		return game.Hit(), true
	case "stand":
		return game.Stand(), true
	case "double":
		return game.Double(), true
	case "split":
		return game.SplitHand(), true
	case "surrender":
		return game.Surrender(), true
	case "new":
		return game.NewRound(), true
	case "quit":
		return game.Command{}, true
	default:
		return game.Command{}, false
	}
}

func printSnapshot(sess *game.Session, countState *counting.State, shoe *deck.Shoe) {
	fmt.Printf("state=%s bankroll=$%.2f running_count=%.1f true_count=%.2f decks_remaining=%.2f\n",
		sess.State(), float64(sess.Bankroll())/100,
		countState.Display(), countState.TrueCount(shoe.DecksRemaining()), shoe.DecksRemaining())

	if h := sess.CurrentHand(); h != nil {
		fmt.Printf("  your hand: %s (total %d)\n", formatHand(h), h.Total())
		avail := sess.AvailableActions()
		fmt.Printf("  available: %s\n", formatAvailable(avail))
	}
	if d := sess.DealerHand(); d != nil && len(d.Cards) > 0 {
		fmt.Printf("  dealer shows: %s\n", d.Cards[0])
	}
}

func formatHand(h *hand.Hand) string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func formatAvailable(avail map[game.CommandKind]bool) string {
	var names []string
	for kind, ok := range avail {
		if ok {
			names = append(names, kind.String())
		}
	}
	return strings.Join(names, ", ")
}

func printSessionSummary(agg *stats.Aggregator, sessionID string) {
	snap := agg.Session(sessionID)
	fmt.Printf("hands played: %d  wins: %d  losses: %d  pushes: %d  blackjacks: %d  net: $%.2f\n",
		snap.HandsPlayed, snap.Wins, snap.Losses, snap.Pushes, snap.Blackjacks, float64(snap.NetResult)/100)
}
