// Package webstr decodes the status page served by the AquaConnect panel.
//
// The panel encodes every LED byte as one printable character whose high and
// low nibbles both fall in the range 3..6. The tables below are the inverse of
// the mapping used by the panel's own WebFuncs.js.
package webstr

import "pool_automation/internal/models"

// charNibbles maps a raw character to its high and low nibble digits.
var charNibbles = map[rune][2]byte{
	'3': {'3', '3'}, '4': {'3', '4'}, '5': {'3', '5'}, '6': {'3', '6'},
	'C': {'4', '3'}, 'D': {'4', '4'}, 'E': {'4', '5'}, 'F': {'4', '6'},
	'S': {'5', '3'}, 'T': {'5', '4'}, 'U': {'5', '5'}, 'V': {'5', '6'},
	'c': {'6', '3'}, 'd': {'6', '4'}, 'e': {'6', '5'}, 'f': {'6', '6'},
}

// unknownNibbles is used for characters outside the alphabet.
var unknownNibbles = [2]byte{'0', '0'}

var nibbleStates = map[byte]models.LedState{
	'3': models.LedNoKey,
	'4': models.LedOff,
	'5': models.LedOn,
	'6': models.LedBlink,
}

// nibbles returns the two nibble digits for c.
func nibbles(c rune) [2]byte {
	if n, ok := charNibbles[c]; ok {
		return n
	}
	return unknownNibbles
}

// nibbleState maps a nibble digit to an LED state; anything unknown is NO_KEY.
func nibbleState(n byte) models.LedState {
	if st, ok := nibbleStates[n]; ok {
		return st
	}
	return models.LedNoKey
}

// Decode turns the raw LED segment into a key table. Each character yields
// two consecutive keys. The low nibble of the final character is a control
// nibble and is always reported as NO_KEY. Decode never fails: unknown
// characters decode to two NO_KEY entries.
func Decode(raw string) map[models.KeyID]models.LedState {
	chars := []rune(raw)
	out := make(map[models.KeyID]models.LedState, 2*len(chars))
	for i, c := range chars {
		n := nibbles(c)
		out[models.KeyAt(2*i)] = nibbleState(n[0])
		if i == len(chars)-1 {
			out[models.KeyAt(2*i+1)] = models.LedNoKey
			continue
		}
		out[models.KeyAt(2*i+1)] = nibbleState(n[1])
	}
	return out
}
