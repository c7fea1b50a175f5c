// Package ir defines the data model shared by the variable transformation
// engine, the template selector, and their collaborators.
//
// The model is intentionally small and closed:
//
//   - Value is a sealed three-way variant (Scalar | MultiSelect | Group)
//     covering every answer shape a survey can produce. Consumers
//     type-switch exhaustively; there is no reflection-based probing.
//   - VariableMapping, RuleCondition, SelectionRule, and Template mirror
//     the persisted per-template configuration, read-only to the engine.
//   - VarMap is the engine's output contract with the external document
//     renderer: flat name -> formatted string entries plus loop-ready
//     group arrays.
//
// Everything here is plain data. Behavior lives in internal/engine,
// internal/format, and internal/formula.
package ir
