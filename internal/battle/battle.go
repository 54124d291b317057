package battle

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/louisbranch/creaturebattle/internal/battle/rng"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const tracerName = "github.com/louisbranch/creaturebattle/internal/battle"

// Kind is the kind of encounter.
type Kind int

const (
	KindWild Kind = iota
	KindTrainer
	KindPvP
)

// String returns the kind label.
func (k Kind) String() string {
	switch k {
	case KindWild:
		return "wild"
	case KindTrainer:
		return "trainer"
	case KindPvP:
		return "pvp"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind label.
func ParseKind(value string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "wild", "":
		return KindWild, true
	case "trainer":
		return KindTrainer, true
	case "pvp":
		return KindPvP, true
	default:
		return 0, false
	}
}

// Phase is a step of the turn state machine.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseStartTurn      Phase = "start_turn"
	PhaseRunSwitch      Phase = "run_switch"
	PhaseRunAfterSwitch Phase = "run_after_switch"
	PhaseRunMove        Phase = "run_move"
	PhaseRunFaint       Phase = "run_faint"
	PhaseResidual       Phase = "residual"
	PhaseEndTurn        Phase = "end_turn"
	PhaseConcluded      Phase = "concluded"
)

// Outcome describes how a battle ended.
type Outcome string

const (
	OutcomeOngoing  Outcome = ""
	OutcomeWin      Outcome = "win"
	OutcomeDraw     Outcome = "draw"
	OutcomeFled     Outcome = "fled"
	OutcomeCaptured Outcome = "captured"
)

// Config holds everything needed to build a Battle.
type Config struct {
	ID           string
	Kind         Kind
	Participants []*Participant
	// ActivePerSide is the number of active slots per participant. Zero means one.
	ActivePerSide int
	Library       Library
	Rand          rng.Source
	Sink          MessageSink
	Decisions     DecisionLogger
	Logger        *log.Logger
	// Printer formats narration. Nil narrates in English.
	Printer *message.Printer
	// Tracer records turn and phase spans. Nil uses the global provider.
	Tracer trace.Tracer
}

// Battle is one encounter. It lives for the duration of the encounter only.
type Battle struct {
	ID            string
	Kind          Kind
	Participants  []*Participant
	Field         *Field
	Events        *Dispatcher
	ActivePerSide int
	Turn          int

	phase    Phase
	outcome  Outcome
	winner   *Participant
	captured *Combatant

	lib       Library
	rng       rng.Source
	sink      MessageSink
	decisions DecisionLogger
	logger    *log.Logger
	printer   *message.Printer
	tracer    trace.Tracer

	queue       Queue
	entering    []*Combatant
	switchedOut []*Combatant
	transcript  []string
}

// New validates cfg and returns a battle with leading combatants placed in
// their slots. Their switch-in hooks run in the first turn's run_switch phase.
func New(cfg Config) (*Battle, error) {
	if len(cfg.Participants) == 0 {
		return nil, ErrNoParticipants
	}
	if len(cfg.Participants) < 2 {
		return nil, ErrTooFewParticipants
	}
	if cfg.Library == nil {
		return nil, ErrNoLibrary
	}
	if cfg.Rand == nil {
		return nil, ErrNoRandSource
	}
	active := cfg.ActivePerSide
	if active == 0 {
		active = 1
	}
	if active < 1 || active > 3 {
		return nil, ErrInvalidActiveCount
	}
	for _, p := range cfg.Participants {
		if p == nil {
			return nil, ErrEmptyRoster
		}
		usable := false
		for i, c := range p.Roster {
			if c == nil {
				return nil, fmt.Errorf("participant %q roster entry %d: %w", p.Name, i, ErrEmptyRoster)
			}
			if c.Usable() {
				usable = true
			}
		}
		if !usable {
			return nil, fmt.Errorf("participant %q: %w", p.Name, ErrEmptyRoster)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	printer := cfg.Printer
	if printer == nil {
		printer = message.NewPrinter(language.English)
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	b := &Battle{
		ID:            cfg.ID,
		Kind:          cfg.Kind,
		Participants:  cfg.Participants,
		Field:         newField(),
		Events:        NewDispatcher(logger),
		ActivePerSide: active,
		phase:         PhaseIdle,
		lib:           cfg.Library,
		rng:           cfg.Rand,
		sink:          cfg.Sink,
		decisions:     cfg.Decisions,
		logger:        logger,
		printer:       printer,
		tracer:        tracer,
	}
	for pi, p := range b.Participants {
		p.index = pi
		if p.Side == nil {
			p.Side = newSide(p)
		}
		p.Side.participant = p
		p.Active = make([]*Combatant, active)
		for ri, c := range p.Roster {
			c.participant = p
			c.position = -1
			if c.ID == "" {
				c.ID = fmt.Sprintf("p%d-%d", pi+1, ri+1)
			}
			if c.Volatiles == nil {
				c.Volatiles = map[string]*Volatile{}
			}
			if c.MaxHP < 1 {
				c.MaxHP = max(c.Stats.HP, 1)
			}
			c.setHP(c.HP)
			for _, stat := range BoostableStats {
				c.setStage(stat, c.Boosts.Get(stat))
			}
		}
		slot := 0
		for _, c := range p.Roster {
			if slot >= active {
				break
			}
			if !c.Usable() {
				continue
			}
			b.place(p, slot, c)
			slot++
		}
	}
	return b, nil
}

// Library returns the reference tables the battle was built with.
func (b *Battle) Library() Library {
	return b.lib
}

// Rand returns the battle's random source.
func (b *Battle) Rand() rng.Source {
	return b.rng
}

// Logger returns the battle's logger.
func (b *Battle) Logger() *log.Logger {
	return b.logger
}

// Phase returns the current phase.
func (b *Battle) Phase() Phase {
	return b.phase
}

// Concluded reports whether the battle has ended.
func (b *Battle) Concluded() bool {
	return b.outcome != OutcomeOngoing
}

// Outcome returns how the battle ended.
func (b *Battle) Outcome() Outcome {
	return b.outcome
}

// Winner returns the winning participant, or nil for draws and unfinished
// battles.
func (b *Battle) Winner() *Participant {
	return b.winner
}

// Captured returns the combatant caught in a wild battle, or nil.
func (b *Battle) Captured() *Combatant {
	return b.captured
}

// Submit declares an action for the current turn. A later action for the same
// active slot replaces an earlier one. Invalid targets and moves are not
// errors: they resolve as narrated failures.
func (b *Battle) Submit(a Action) error {
	if b.Concluded() {
		return ErrBattleConcluded
	}
	if a.Actor == nil || !b.hasParticipant(a.Actor) {
		return ErrUnknownParticipant
	}
	action := a
	b.bindAction(&action)
	pending := a.Actor.pending[:0]
	for _, existing := range a.Actor.pending {
		if existing.Slot != action.Slot {
			pending = append(pending, existing)
		}
	}
	a.Actor.pending = append(pending, &action)
	return nil
}

func (b *Battle) bindAction(a *Action) {
	a.done = false
	a.promoted = false
	a.combatant = a.Actor.At(a.Slot)
	if a.combatant == nil && a.Kind == ActionSwitch && a.Slot >= 0 && a.Slot < len(a.Actor.Active) {
		a.combatant = a.Actor.Active[a.Slot]
	}
}

func (b *Battle) hasParticipant(p *Participant) bool {
	for _, candidate := range b.Participants {
		if candidate == p {
			return true
		}
	}
	return false
}

// RunTurn resolves one full turn.
func (b *Battle) RunTurn(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.Concluded() {
		return ErrBattleConcluded
	}
	b.Turn++
	ctx, span := b.tracer.Start(ctx, "battle.turn", trace.WithAttributes(
		attribute.String("battle.id", b.ID),
		attribute.Int("battle.turn", b.Turn),
	))
	defer span.End()

	phases := []struct {
		phase Phase
		run   func()
		final bool
	}{
		{phase: PhaseStartTurn, run: b.startTurn},
		{phase: PhaseRunSwitch, run: b.runSwitch},
		{phase: PhaseRunAfterSwitch, run: b.runAfterSwitch},
		{phase: PhaseRunMove, run: b.runMove},
		{phase: PhaseRunFaint, run: b.runFaint, final: true},
		{phase: PhaseResidual, run: b.residual},
		{phase: PhaseEndTurn, run: b.endTurn, final: true},
	}
	for _, step := range phases {
		if b.Concluded() && !step.final {
			continue
		}
		b.phase = step.phase
		_, phaseSpan := b.tracer.Start(ctx, "battle.phase", trace.WithAttributes(
			attribute.String("battle.phase", string(step.phase)),
			attribute.Int("battle.turn", b.Turn),
		))
		step.run()
		phaseSpan.End()
	}
	if b.Concluded() {
		b.phase = PhaseConcluded
		span.SetAttributes(attribute.String("battle.outcome", string(b.outcome)))
	} else {
		b.phase = PhaseIdle
	}
	return nil
}

// Run resolves turns until the battle concludes or maxTurns turns have run.
// Participants without declared actions pass, except AI participants, which
// choose their own actions each turn.
func (b *Battle) Run(ctx context.Context, maxTurns int) error {
	for i := 0; maxTurns <= 0 || i < maxTurns; i++ {
		if b.Concluded() {
			return nil
		}
		if err := b.RunTurn(ctx); err != nil {
			return err
		}
	}
	return nil
}

// place puts c into slot without running switch-in hooks.
func (b *Battle) place(p *Participant, slot int, c *Combatant) {
	p.Active[slot] = c
	c.position = slot
	c.Transient.SwitchedIn = true
	b.entering = append(b.entering, c)
}

func (b *Battle) orderOptions() OrderOptions {
	return OrderOptions{TrickRoom: b.Field.HasPseudoWeather("trickroom")}
}

// eachActive calls fn for every active combatant in canonical slot order.
func (b *Battle) eachActive(fn func(c *Combatant)) {
	for _, p := range b.Participants {
		for _, c := range p.Active {
			if c.Active() {
				fn(c)
			}
		}
	}
}

// ActiveCombatants returns every combatant in play in canonical slot order.
func (b *Battle) ActiveCombatants() []*Combatant {
	var out []*Combatant
	b.eachActive(func(c *Combatant) { out = append(out, c) })
	return out
}

// Foes returns the active combatants opposing c.
func (b *Battle) Foes(c *Combatant) []*Combatant {
	var out []*Combatant
	for _, p := range b.Participants {
		if p == c.participant || p.Lost {
			continue
		}
		out = append(out, p.ActiveCombatants()...)
	}
	return out
}

// Allies returns the other active combatants on c's side.
func (b *Battle) Allies(c *Combatant) []*Combatant {
	var out []*Combatant
	if c.participant == nil {
		return out
	}
	for _, ally := range c.participant.ActiveCombatants() {
		if ally != c {
			out = append(out, ally)
		}
	}
	return out
}

// Opponent returns the first participant other than p that has not lost.
func (b *Battle) Opponent(p *Participant) *Participant {
	for _, candidate := range b.Participants {
		if candidate != p && !candidate.Lost {
			return candidate
		}
	}
	return nil
}

func (b *Battle) conclude(outcome Outcome, winner *Participant) {
	if b.Concluded() {
		return
	}
	b.outcome = outcome
	b.winner = winner
	b.queue.Drain()
}
