package effects

// Narration formats used by the callback library.
const (
	MsgConfused         = "%s became confused!"
	MsgIsConfused       = "%s is confused!"
	MsgHurtInConfusion  = "It hurt itself in its confusion!"
	MsgSnappedOut       = "%s snapped out of its confusion!"
	MsgFatigueConfusion = "%s became confused due to fatigue!"
	MsgSeeded           = "%s was seeded!"
	MsgSapped           = "%s's health is sapped by Leech Seed!"
	MsgAquaRing         = "%s surrounded itself with a veil of water!"
	MsgAquaRingHeal     = "A veil of water restored %s's HP!"
	MsgBound            = "%s was trapped in the vortex!"
	MsgHurtByTrap       = "%s is hurt by the trap!"
	MsgInLove           = "%s fell in love!"
	MsgImmobilized      = "%s is immobilized by love!"
	MsgProtecting       = "%s is protecting itself!"
	MsgPumped           = "%s is getting pumped!"
	MsgFlashFire        = "The power of %s's Fire-type moves rose!"
	MsgReflect          = "Reflect made %s's team stronger against physical moves!"
	MsgLightScreen      = "Light Screen made %s's team stronger against special moves!"
	MsgTailwind         = "The tailwind blew from behind %s's team!"
	MsgSafeguard        = "%s's team cloaked itself in a mystical veil!"
	MsgSafeguarded      = "%s is protected by Safeguard!"
	MsgStealthRock      = "Pointed stones float in the air around %s's team!"
	MsgSpikes           = "Spikes were scattered all around %s's team!"
	MsgHurtByRocks      = "Pointed stones dug into %s!"
	MsgHurtBySpikes     = "%s is hurt by the spikes!"
	MsgTrickRoom        = "%s twisted the dimensions!"
	MsgRainStarted      = "It started to rain!"
	MsgSunStarted       = "The sunlight turned harsh!"
	MsgSandstormStarted = "A sandstorm kicked up!"
	MsgBuffetedBySand   = "%s is buffeted by the sandstorm!"
	MsgIntimidate       = "%s intimidates its foes!"
	MsgAfterYou         = "%s took the kind offer!"
	MsgQuashed          = "%s's move was postponed!"
	MsgAllySwitch       = "%s and %s switched places!"
	MsgFollowMe         = "%s became the center of attention!"
	MsgRest             = "%s slept and became healthy!"
	MsgLeftovers        = "%s restored a little HP using its Leftovers!"
	MsgBlackSludgeHurt  = "%s is hurt by its Black Sludge!"
	MsgBlackSludgeHeal  = "%s restored a little HP using its Black Sludge!"
	MsgLifeOrb          = "%s lost some of its HP!"
	MsgFocusSash        = "%s hung on using its Focus Sash!"
	MsgSitrusBerry      = "%s restored health using its Sitrus Berry!"
	MsgLumBerry         = "%s's Lum Berry cured its status!"
	MsgItemHealed       = "%s's HP was restored by %d points."
	MsgSturdy           = "%s endured the hit!"
	MsgRockyHelmet      = "%s was hurt by the Rocky Helmet!"
	MsgWeaknessPolicy   = "The Weakness Policy sharply raised %s's Attack and Sp. Atk!"
	MsgToxicSpikes      = "Poison spikes were scattered all around %s's team!"
	MsgAbsorbedSpikes   = "%s absorbed the poison spikes!"
	MsgCantEscape       = "%s can no longer escape!"
	MsgDrowsy           = "%s grew drowsy!"
)

// MessageKeys returns every narration format used by the callback library.
func MessageKeys() []string {
	return []string{
		MsgConfused, MsgIsConfused, MsgHurtInConfusion, MsgSnappedOut,
		MsgFatigueConfusion, MsgSeeded, MsgSapped, MsgAquaRing, MsgAquaRingHeal,
		MsgBound, MsgHurtByTrap, MsgInLove, MsgImmobilized, MsgProtecting,
		MsgPumped, MsgFlashFire, MsgReflect, MsgLightScreen, MsgTailwind,
		MsgSafeguard, MsgSafeguarded, MsgStealthRock, MsgSpikes, MsgHurtByRocks,
		MsgHurtBySpikes, MsgTrickRoom, MsgRainStarted, MsgSunStarted,
		MsgSandstormStarted, MsgBuffetedBySand, MsgIntimidate, MsgAfterYou,
		MsgQuashed, MsgAllySwitch, MsgFollowMe, MsgRest, MsgLeftovers,
		MsgBlackSludgeHurt, MsgBlackSludgeHeal, MsgLifeOrb, MsgFocusSash,
		MsgSitrusBerry, MsgLumBerry, MsgItemHealed, MsgSturdy, MsgRockyHelmet,
		MsgWeaknessPolicy, MsgToxicSpikes, MsgAbsorbedSpikes, MsgCantEscape,
		MsgDrowsy,
	}
}
