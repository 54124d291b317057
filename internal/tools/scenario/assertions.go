package scenario

import (
	"fmt"
	"log"

	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
)

// AssertionMode selects how failed expectations are reported.
type AssertionMode int

const (
	// AssertionStrict fails the scenario on the first unmet expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs unmet expectations and keeps going.
	AssertionLogOnly
)

// Assertions reports expectation results according to Mode.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
}

// Failf reports a malformed step. It fails in every mode.
func (a Assertions) Failf(format string, args ...any) error {
	return apperrors.New(apperrors.CodeScenarioInvalid, fmt.Sprintf(format, args...))
}

// Assertf reports an unmet expectation. In log-only mode it logs and
// returns nil.
func (a Assertions) Assertf(format string, args ...any) error {
	message := fmt.Sprintf(format, args...)
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Printf("expectation failed: %s", message)
		}
		return nil
	}
	return apperrors.New(apperrors.CodeScenarioExpectation, message)
}
