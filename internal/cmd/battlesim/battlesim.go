// Package battlesim implements the battlesim command: it runs many AI
// battles concurrently, optionally persists their transcripts, and prints a
// localized summary.
package battlesim

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/battle/rng"
	"github.com/louisbranch/creaturebattle/internal/dex"
	"github.com/louisbranch/creaturebattle/internal/narration"
	platformcmd "github.com/louisbranch/creaturebattle/internal/platform/cmd"
	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
	"github.com/louisbranch/creaturebattle/internal/platform/id"
	"github.com/louisbranch/creaturebattle/internal/platform/timeouts"
	"github.com/louisbranch/creaturebattle/internal/random"
	"github.com/louisbranch/creaturebattle/internal/storage"
	"github.com/louisbranch/creaturebattle/internal/storage/sqlite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/louisbranch/creaturebattle/internal/cmd/battlesim"

// Config holds battlesim configuration.
type Config struct {
	Battles     int   `env:"BATTLESIM_BATTLES"     envDefault:"10"`
	Concurrency int   `env:"BATTLESIM_CONCURRENCY" envDefault:"4"`
	Seed        int64 `env:"BATTLESIM_SEED"`
	// Turns caps every battle. Battles still running afterwards are reported
	// as unfinished.
	Turns  int `env:"BATTLESIM_TURNS"  envDefault:"100"`
	Level  int `env:"BATTLESIM_LEVEL"  envDefault:"50"`
	Roster int `env:"BATTLESIM_ROSTER" envDefault:"3"`
	// Active is the number of combatants each side keeps in play.
	Active   int           `env:"BATTLESIM_ACTIVE"   envDefault:"1"`
	Database string        `env:"BATTLESIM_DATABASE"`
	Locale   string        `env:"LOCALE"             envDefault:"en-US"`
	Verbose  bool          `env:"BATTLESIM_VERBOSE"`
	Timeout  time.Duration `env:"BATTLESIM_TIMEOUT"`
}

// ParseConfig parses env defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = timeouts.Simulation
	}

	fs.IntVar(&cfg.Battles, "battles", cfg.Battles, "number of battles to run")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "battles run at once")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "base seed (0 picks one at random)")
	fs.IntVar(&cfg.Turns, "turns", cfg.Turns, "turn limit per battle")
	fs.IntVar(&cfg.Level, "level", cfg.Level, "level of every combatant")
	fs.IntVar(&cfg.Roster, "roster", cfg.Roster, "combatants per participant")
	fs.IntVar(&cfg.Active, "active", cfg.Active, "active combatants per side (1 to 3)")
	fs.StringVar(&cfg.Database, "db", cfg.Database, "sqlite path for transcripts (empty disables persistence)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "narration and summary locale")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "print every narrated line")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout for the whole run")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var reason string
	switch {
	case c.Battles < 1:
		reason = "battles must be positive"
	case c.Concurrency < 1:
		reason = "concurrency must be positive"
	case c.Turns < 1:
		reason = "turns must be positive"
	case c.Roster < 1:
		reason = "roster must be positive"
	case c.Active < 1 || c.Active > 3:
		reason = "active must be between 1 and 3"
	case c.Active > c.Roster:
		reason = "active must not exceed roster"
	default:
		return nil
	}
	return apperrors.New(apperrors.CodeBattleInvalidConfig, reason)
}

// result is the outcome of one simulated battle.
type result struct {
	ID      string
	Seed    int64
	Outcome battle.Outcome
	Winner  string
	Caught  string
	Turns   int
}

// sim carries what every battle of a run shares.
type sim struct {
	cfg     Config
	dex     *dex.Dex
	catalog *narration.Catalog
	store   *sqlite.Store
	logger  *log.Logger
	verbose battle.MessageSink
	tracer  trace.Tracer
	moves   []string
}

// Run executes the simulation and writes the summary to out. Diagnostics go
// to errOut.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	d, err := dex.Default()
	if err != nil {
		return fmt.Errorf("load dex: %w", err)
	}
	catalog, err := narration.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if cfg.Seed == 0 {
		if cfg.Seed, err = random.NewSeed(); err != nil {
			return err
		}
	}

	s := &sim{
		cfg:     cfg,
		dex:     d,
		catalog: catalog,
		logger:  log.New(errOut, "battlesim: ", 0),
		tracer:  otel.Tracer(tracerName),
		moves:   damagingMoves(d),
	}
	if len(s.moves) == 0 {
		return errors.New("dex has no damaging moves")
	}
	if cfg.Verbose {
		s.verbose = narration.NewWriter(out, narration.WithBattleID())
	}
	if cfg.Database != "" {
		store, err := sqlite.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("open battle store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				s.logger.Printf("close battle store: %v", err)
			}
		}()
		s.store = store
	}
	s.logger.Printf("running %d battles with seed %d", cfg.Battles, cfg.Seed)

	results := make([]result, cfg.Battles)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i := range results {
		g.Go(func() error {
			res, err := s.runBattle(gctx, i)
			if err != nil {
				return fmt.Errorf("battle %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSummary(out, catalog, cfg.Locale, results)
	return nil
}

func (s *sim) runBattle(ctx context.Context, index int) (result, error) {
	battleID, err := id.NewID()
	if err != nil {
		return result{}, err
	}
	seed := random.Derive(s.cfg.Seed, index)
	ctx, span := s.tracer.Start(ctx, "battlesim.battle", trace.WithAttributes(
		attribute.String("battle.id", battleID),
		attribute.Int64("battle.seed", seed),
	))
	defer span.End()

	src := rng.New(seed)
	participants := make([]*battle.Participant, 0, 2)
	for _, name := range []string{"Red", "Blue"} {
		roster, err := s.roster(battleID, name, src)
		if err != nil {
			return result{}, err
		}
		participants = append(participants, battle.NewParticipant(name, roster, true))
	}

	recorder := narration.NewRecorder()
	sinks := narration.Fanout{recorder, s.verbose}
	cfg := battle.Config{
		ID:            battleID,
		Kind:          battle.KindTrainer,
		Participants:  participants,
		ActivePerSide: s.cfg.Active,
		Library:       s.dex,
		Rand:          src,
		Sink:          sinks,
		Logger:        s.logger,
		Printer:       s.catalog.Printer(s.cfg.Locale),
		Tracer:        s.tracer,
	}

	record := storage.BattleRecord{
		ID:           battleID,
		Kind:         battle.KindTrainer.String(),
		Seed:         seed,
		Locale:       s.cfg.Locale,
		Participants: []string{"Red", "Blue"},
		CreatedAt:    time.Now().UTC(),
	}
	if s.store != nil {
		if err := s.store.RecordBattle(ctx, record); err != nil {
			return result{}, fmt.Errorf("record battle: %w", err)
		}
		cfg.Decisions = s.store.DecisionLogger(ctx, battleID, s.logger)
	}

	b, err := battle.New(cfg)
	if err != nil {
		return result{}, err
	}
	if err := b.Run(ctx, s.cfg.Turns); err != nil {
		return result{}, err
	}

	res := result{ID: battleID, Seed: seed, Outcome: b.Outcome(), Turns: b.Turn}
	if w := b.Winner(); w != nil {
		res.Winner = w.Name
	}
	if c := b.Captured(); c != nil {
		res.Caught = c.Name
	}
	span.SetAttributes(attribute.String("battle.outcome", string(res.Outcome)), attribute.Int("battle.turns", res.Turns))

	if s.store != nil {
		if err := s.store.AppendMessages(ctx, battleID, recorder.Lines(battleID)); err != nil {
			return result{}, fmt.Errorf("append messages: %w", err)
		}
		record.Outcome = string(res.Outcome)
		record.Winner = res.Winner
		record.Turns = res.Turns
		if b.Concluded() {
			finished := time.Now().UTC()
			record.FinishedAt = &finished
		}
		if err := s.store.RecordBattle(ctx, record); err != nil {
			return result{}, fmt.Errorf("record outcome: %w", err)
		}
	}
	return res, nil
}

// roster builds Roster random combatants for one participant from src.
func (s *sim) roster(battleID, owner string, src rng.Source) ([]*battle.Combatant, error) {
	species := s.dex.SpeciesKeys()
	roster := make([]*battle.Combatant, 0, s.cfg.Roster)
	for i := 0; i < s.cfg.Roster; i++ {
		key := species[rng.Pick(src, len(species))]
		c, err := s.dex.Build(dex.Record{
			ID:      fmt.Sprintf("%s-%s-%d", battleID, owner, i+1),
			Species: key,
			Level:   s.cfg.Level,
			Moves:   pickMoves(s.moves, src, 4),
		})
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", key, err)
		}
		roster = append(roster, c)
	}
	return roster, nil
}

func damagingMoves(d *dex.Dex) []string {
	var out []string
	for _, key := range d.MoveKeys() {
		if m, ok := d.Move(key); ok && m.Damaging() {
			out = append(out, key)
		}
	}
	return out
}

// pickMoves draws up to n distinct moves from pool.
func pickMoves(pool []string, src rng.Source, n int) []string {
	remaining := append([]string(nil), pool...)
	out := make([]string, 0, n)
	for len(out) < n && len(remaining) > 0 {
		i := rng.Pick(src, len(remaining))
		out = append(out, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return out
}

func printSummary(out io.Writer, catalog *narration.Catalog, locale string, results []result) {
	p := catalog.Printer(locale)
	var won, drawn, unfinished int
	for _, r := range results {
		var line string
		switch r.Outcome {
		case battle.OutcomeWin:
			won++
			line = p.Sprintf(narration.MsgSummaryWon, r.ID, r.Winner, r.Turns)
		case battle.OutcomeDraw:
			drawn++
			line = p.Sprintf(narration.MsgSummaryDraw, r.ID, r.Turns)
		case battle.OutcomeFled:
			line = p.Sprintf(narration.MsgSummaryFled, r.ID, r.Winner, r.Turns)
		case battle.OutcomeCaptured:
			line = p.Sprintf(narration.MsgSummaryCaptured, r.ID, r.Caught, r.Turns)
		default:
			unfinished++
			line = p.Sprintf(narration.MsgSummaryUnfinished, r.ID, r.Turns)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, p.Sprintf(narration.MsgSummaryTotals, len(results), won, drawn, unfinished))
}
