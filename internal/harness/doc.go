// Package harness executes conformance scenarios against the
// transformation engine.
//
// A scenario is a YAML file naming a survey answer file, optionally a
// template directory, and a list of assertions over the resulting
// variable map, template selection, and validation report. Scenarios run
// with a fixed clock and document number so their output is byte-stable;
// golden runs snapshot the full result for regression comparison.
package harness
