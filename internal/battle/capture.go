package battle

import "math"

const (
	maxCatchRate   = 255
	captureShakes  = 4
	shakeRange     = 65536
	shakeExponent  = 0.1875
	sleepCatchMod  = 2.5
	statusCatchMod = 1.5
)

// CaptureValue returns the modified catch rate of target for a ball with
// the given multiplier:
//
//	a = floor((3*max - 2*hp) * rate * ball * status / (3*max))
//
// The result is at least 1.
func CaptureValue(target *Combatant, ball float64) int {
	rate := target.CatchRate
	if rate <= 0 || rate > maxCatchRate {
		rate = maxCatchRate
	}
	statusMod := 1.0
	switch target.Status {
	case StatusSleep, StatusFreeze:
		statusMod = sleepCatchMod
	case StatusParalysis, StatusBurn, StatusPoison, StatusToxic:
		statusMod = statusCatchMod
	}
	maxHP := max(target.MaxHP, 1)
	a := math.Floor(float64(3*maxHP-2*target.HP) * float64(rate) * ball * statusMod / float64(3*maxHP))
	return max(int(a), 1)
}

// ShakeThreshold returns the per-shake success bound for a capture value
// below 255: b = 65536 / (255/a)^0.1875.
func ShakeThreshold(a int) int {
	if a >= maxCatchRate {
		return shakeRange
	}
	a = max(a, 1)
	return int(shakeRange / math.Pow(float64(maxCatchRate)/float64(a), shakeExponent))
}

// AttemptCapture throws a ball with multiplier ball at target on behalf of
// thrower. Only wild battles allow captures. A successful capture concludes
// the battle with thrower as the winner.
func (b *Battle) AttemptCapture(thrower *Participant, target *Combatant, ball float64) bool {
	if b.Kind != KindWild {
		b.Say(MsgBallBlocked)
		return false
	}
	if !target.Usable() || target.participant == thrower {
		return false
	}
	a := CaptureValue(target, ball)
	caught := true
	if a < maxCatchRate {
		threshold := ShakeThreshold(a)
		for i := 0; i < captureShakes; i++ {
			if b.rng.Intn(shakeRange) >= threshold {
				caught = false
				break
			}
			b.Say(MsgBallShake)
		}
	}
	b.RecordDecision("turn %d: %s threw a ball at %s (a=%d caught=%t)", b.Turn, thrower.Name, target.ID, a, caught)
	if !caught {
		b.Say(MsgBrokeFree, target.Name)
		return true
	}
	b.Say(MsgCaught, target.Name)
	b.captured = target
	b.conclude(OutcomeCaptured, thrower)
	return true
}
