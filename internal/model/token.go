package model

import (
	"fmt"
	"strings"
)

// StateToken is one administrative state accepted by scontrol update.
// Observed node state is a set of tokens (a node can be IDLE and DRAIN at
// once); a desired state names exactly one token from this set.
type StateToken string

const (
	StateDown           StateToken = "DOWN"
	StateDrain          StateToken = "DRAIN"
	StateFail           StateToken = "FAIL"
	StateFuture         StateToken = "FUTURE"
	StateNoResp         StateToken = "NORESP"
	StatePowerDown      StateToken = "POWER_DOWN"
	StatePowerDownASAP  StateToken = "POWER_DOWN_ASAP"
	StatePowerDownForce StateToken = "POWER_DOWN_FORCE"
	StatePowerUp        StateToken = "POWER_UP"
	StateResume         StateToken = "RESUME"
	StateUndrain        StateToken = "UNDRAIN"
)

// StateTokens lists every token accepted as a reconciliation target, in the
// order scontrol documents them.
var StateTokens = []StateToken{
	StateDown,
	StateDrain,
	StateFail,
	StateFuture,
	StateNoResp,
	StatePowerDown,
	StatePowerDownASAP,
	StatePowerDownForce,
	StatePowerUp,
	StateResume,
	StateUndrain,
}

// reasonRequired marks tokens that scontrol refuses without a reason string.
// New tokens only need an entry here; validation call sites stay untouched.
var reasonRequired = map[StateToken]bool{
	StateDrain: true,
}

// ParseStateToken normalises a caller-supplied token (case-insensitive) and
// rejects anything outside the allowed set.
func ParseStateToken(raw string) (StateToken, error) {
	token := StateToken(strings.ToUpper(strings.TrimSpace(raw)))
	for _, allowed := range StateTokens {
		if token == allowed {
			return token, nil
		}
	}
	return "", fmt.Errorf("state %q is not one of %s", raw, TokenList())
}

// RequiresReason reports whether the token cannot be applied without a reason.
func (t StateToken) RequiresReason() bool {
	return reasonRequired[t]
}

func (t StateToken) String() string {
	return string(t)
}

// TokenList renders the allowed token set for error messages and CLI help.
func TokenList() string {
	names := make([]string, len(StateTokens))
	for i, t := range StateTokens {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}
