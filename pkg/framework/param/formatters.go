package param

import (
	"fmt"
	"math"
)

// Common display formatters. Each takes a value in UI units.

// FrequencyFormatter formats frequency values with Hz/kHz
func FrequencyFormatter(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.2f kHz", hz/1000)
	}
	return fmt.Sprintf("%.1f Hz", hz)
}

// DecibelFormatter formats dB values, showing the floor as -∞
func DecibelFormatter(db float64) string {
	if db <= MinDB {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// PercentFormatter formats a unipolar value as a percentage
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value*100)
}

// TimeFormatter formats milliseconds with appropriate units
func TimeFormatter(ms float64) string {
	if ms < 1 {
		return fmt.Sprintf("%.2f µs", ms*1000)
	} else if ms < 1000 {
		return fmt.Sprintf("%.1f ms", ms)
	}
	return fmt.Sprintf("%.2f s", ms/1000)
}

// PanFormatter formats a bipolar pan position
func PanFormatter(pan float64) string {
	if math.Abs(pan) < 0.005 {
		return "C"
	} else if pan < 0 {
		return fmt.Sprintf("%.0fL", -pan*100)
	}
	return fmt.Sprintf("%.0fR", pan*100)
}

// CentFormatter formats a detune in cents
func CentFormatter(ct float64) string {
	return fmt.Sprintf("%+.0f ct", ct)
}

// SemitoneFormatter formats a transpose in semitones
func SemitoneFormatter(st float64) string {
	return fmt.Sprintf("%+.0f st", st)
}

// NoteFormatter formats MIDI note numbers
func NoteFormatter(noteNumber float64) string {
	notes := [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	n := int(math.Round(noteNumber))
	if n < 0 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s%d", notes[n%12], n/12-1)
}

// OnOffFormatter formats a toggle as On/Off
func OnOffFormatter(value float64) string {
	if value > 0.5 {
		return "On"
	}
	return "Off"
}
