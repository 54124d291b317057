package battle

// Participant is one side of a battle.
type Participant struct {
	Name   string
	Roster []*Combatant
	// Active holds the combatants in play, one entry per active slot. A nil
	// entry is an empty slot waiting for a replacement.
	Active []*Combatant
	Side   *Side
	AI     bool

	Lost         bool
	Forfeited    bool
	FleeAttempts int

	pending []*Action
	index   int
}

// NewParticipant returns a participant controlling roster.
func NewParticipant(name string, roster []*Combatant, ai bool) *Participant {
	p := &Participant{
		Name:   name,
		Roster: roster,
		AI:     ai,
	}
	p.Side = newSide(p)
	for _, c := range roster {
		if c != nil {
			c.participant = p
		}
	}
	return p
}

// Index returns the participant's position in the battle.
func (p *Participant) Index() int {
	return p.index
}

// Pending returns the actions declared for the current turn.
func (p *Participant) Pending() []*Action {
	return p.pending
}

// ActiveCombatants returns the combatants currently in play, in slot order.
func (p *Participant) ActiveCombatants() []*Combatant {
	out := make([]*Combatant, 0, len(p.Active))
	for _, c := range p.Active {
		if c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// Bench returns usable roster members that are not in play.
func (p *Participant) Bench() []*Combatant {
	var out []*Combatant
	for _, c := range p.Roster {
		if c.Usable() && c.position < 0 {
			out = append(out, c)
		}
	}
	return out
}

// Defeated reports whether every roster member has fainted.
func (p *Participant) Defeated() bool {
	for _, c := range p.Roster {
		if c.Usable() {
			return false
		}
	}
	return true
}

// At returns the combatant in active slot, or nil.
func (p *Participant) At(slot int) *Combatant {
	if slot < 0 || slot >= len(p.Active) {
		return nil
	}
	c := p.Active[slot]
	if !c.Active() {
		return nil
	}
	return c
}

func (p *Participant) rosterIndex(c *Combatant) int {
	for i, member := range p.Roster {
		if member == c {
			return i
		}
	}
	return -1
}

// ActionKind is the kind of a declared action.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionSwitch
	ActionItem
	ActionFlee
	ActionForfeit
)

// String returns the action kind label.
func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionSwitch:
		return "switch"
	case ActionItem:
		return "item"
	case ActionFlee:
		return "flee"
	case ActionForfeit:
		return "forfeit"
	default:
		return "unknown"
	}
}

// Fixed priorities for non-move actions.
const (
	PrioritySwitch  = 6
	PriorityItem    = 8
	PriorityFlee    = 9
	PriorityForfeit = 9
	PriorityQuashed = -7
)

// Action is one declared action for the current turn.
type Action struct {
	Kind  ActionKind
	Actor *Participant
	// Slot is the acting combatant's active slot.
	Slot int
	// Target and TargetSlot select the target combatant when relevant.
	Target     *Participant
	TargetSlot int
	// Move is the key of the move to use.
	Move string
	// SwitchTo is the roster index of the combatant to send in.
	SwitchTo int
	// Item is the key of the item to use.
	Item string
	// Priority is resolved when the action is queued.
	Priority int

	combatant *Combatant
	move      *Move
	promoted  bool
	done      bool
}

// Combatant returns the combatant performing the action.
func (a *Action) Combatant() *Combatant {
	return a.combatant
}

// Done reports whether the action has been resolved or dropped.
func (a *Action) Done() bool {
	return a.done
}
