package webstr

import (
	"strings"

	"pool_automation/internal/models"
)

var stateNibbles = map[models.LedState]byte{
	models.LedNoKey: '3',
	models.LedOff:   '4',
	models.LedOn:    '5',
	models.LedBlink: '6',
}

var nibblesChar = func() map[[2]byte]rune {
	out := make(map[[2]byte]rune, len(charNibbles))
	for c, n := range charNibbles {
		out[n] = c
	}
	return out
}()

// Encode is the inverse of Decode: states are paired high/low into one
// character each. An odd trailing state is padded with NO_KEY.
func Encode(states []models.LedState) string {
	var b strings.Builder
	for i := 0; i < len(states); i += 2 {
		hi := stateNibble(states[i])
		lo := stateNibble(models.LedNoKey)
		if i+1 < len(states) {
			lo = stateNibble(states[i+1])
		}
		b.WriteRune(nibblesChar[[2]byte{hi, lo}])
	}
	return b.String()
}

func stateNibble(s models.LedState) byte {
	if n, ok := stateNibbles[s]; ok {
		return n
	}
	return stateNibbles[models.LedNoKey]
}
