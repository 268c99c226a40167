// Package param provides the parameter model shared by a synth's audio
// thread, its UI and host automation.
//
// A Param holds one float64 that the audio thread reads and writes with
// single atomic operations. The UI goes through SetUI, which validates and
// notifies listeners. Host automation goes through SetHost, which validates
// and raises a one-shot dirty flag instead of notifying. Keep that
// asymmetry: if SetHost notified, a listener that forwards UI edits to the
// host would echo every automation value back to it.
//
// Unit handling lives in a ValueTransform: Linear, Decibel or Steps.
package param
