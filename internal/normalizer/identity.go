package normalizer

import (
	"regexp"
	"strings"

	"github.com/callscope/backend/internal/types"
)

// partyRE matches the "Name (Number)" shape used by PBX exports for
// caller and destination identities.
// Greedy first group, so the last parenthetical is taken as the number
// when the name itself contains parentheses.
var partyRE = regexp.MustCompile(`^(.*)\((.*?)\)\s*$`)

// ExtractIdentity splits a raw party string into display name and number.
// A value without a parenthetical is treated as the name with an unknown
// number; an empty value yields the Unknown sentinel for both, so the
// derived fields are never blank.
func ExtractIdentity(raw string) (name, number string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return types.UnknownParty, types.UnknownParty
	}

	m := partyRE.FindStringSubmatch(s)
	if m == nil {
		return s, types.UnknownParty
	}

	name = strings.TrimSpace(m[1])
	number = strings.TrimSpace(m[2])
	if name == "" {
		name = types.UnknownParty
	}
	if number == "" {
		number = types.UnknownParty
	}
	return name, number
}
