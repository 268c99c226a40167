package param

import "math"

// MinDB is the decibel floor. Anything at or below it is silence.
const MinDB = -96.0

// ToDb converts a linear amplitude to decibels.
// Zero and negative amplitudes return MinDB.
func ToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// FromDb converts decibels to a linear amplitude.
// Values at or below MinDB return exactly 0.
func FromDb(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// ToCent converts a frequency ratio to cents.
func ToCent(ratio float64) float64 {
	return math.Log2(ratio) * 1200.0
}

// FromCent converts cents to a frequency ratio.
func FromCent(cents float64) float64 {
	return math.Exp2(cents / 1200.0)
}

// ToSemi converts a frequency ratio to semitones.
func ToSemi(ratio float64) float64 {
	return math.Log2(ratio) * 12.0
}

// FromSemi converts semitones to a frequency ratio.
func FromSemi(semitones float64) float64 {
	return math.Exp2(semitones / 12.0)
}

// UnipolarToBipolar maps [0, 1] to [-1, 1].
func UnipolarToBipolar(v float64) float64 {
	return 2.0*v - 1.0
}

// BipolarToUnipolar maps [-1, 1] to [0, 1].
func BipolarToUnipolar(v float64) float64 {
	return 0.5*v + 0.5
}

// MidiToBipolar maps a 7-bit MIDI value to [-1, 1].
func MidiToBipolar(midi int) float64 {
	return 2.0*float64(midi)/127.0 - 1.0
}

// MidiToPanValue is MidiToBipolar with a true center: 64 maps to exactly 0,
// and 0 and 1 both map to -1.
func MidiToPanValue(midi int) float64 {
	switch {
	case midi == 64:
		return 0
	case midi <= 1:
		return -1
	}
	return MidiToBipolar(midi)
}

// MidiToUnipolar maps a 7-bit MIDI value to [0, 1].
func MidiToUnipolar(midi int) float64 {
	return float64(midi) / 127.0
}

// UnipolarToMidi maps [0, 1] to a 7-bit MIDI value, truncating.
func UnipolarToMidi(v float64) int {
	return int(v * 127.0)
}

// roundHalfUp rounds to the nearest integer, with .5 going up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
