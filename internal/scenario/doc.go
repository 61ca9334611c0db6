// Package scenario replays scripted field events against a registry of
// headless wrappers and records the visible state after every step.
//
// A scenario is a YAML document with three sections: settings (scroll
// offsets), fields (name, optional position, rules) and steps (one event
// per step). Run mounts every field in declaration order and returns a
// Report holding one Frame per step. `formguard check` prints the report.
package scenario
