package battle

// SideCondition is a duration-bound effect on one participant's side.
type SideCondition struct {
	ID       string
	Duration int
	Layers   int
	Source   *Combatant
}

// Side holds side-wide conditions for one participant.
type Side struct {
	Conditions map[string]*SideCondition

	participant *Participant
}

func newSide(p *Participant) *Side {
	return &Side{Conditions: map[string]*SideCondition{}, participant: p}
}

// Participant returns the side's owner.
func (s *Side) Participant() *Participant {
	return s.participant
}

// Has reports whether the side condition id is active.
func (s *Side) Has(id string) bool {
	_, ok := s.Conditions[id]
	return ok
}

// Condition returns the side condition with id, or nil.
func (s *Side) Condition(id string) *SideCondition {
	return s.Conditions[id]
}

// FieldCondition is a duration-bound effect on the whole battle.
type FieldCondition struct {
	ID         string
	Duration   int
	Multiplier int
	Source     *Combatant
}

// Field holds battle-global weather and pseudo-weather.
type Field struct {
	Weather         string
	WeatherDuration int
	PseudoWeather   map[string]*FieldCondition
}

func newField() *Field {
	return &Field{PseudoWeather: map[string]*FieldCondition{}}
}

// HasPseudoWeather reports whether the pseudo-weather id is active.
func (f *Field) HasPseudoWeather(id string) bool {
	_, ok := f.PseudoWeather[id]
	return ok
}

// GetPseudoWeather returns the pseudo-weather with id, or nil.
func (f *Field) GetPseudoWeather(id string) *FieldCondition {
	return f.PseudoWeather[id]
}
