// Package config loads template definitions and survey answer files from
// disk into their IR forms.
//
// Templates are authored in CUE under a top-level "template" struct, one
// entry per template id. CUE gives authors constraints and composition;
// this package compiles the evaluated values into ir.Template and rejects
// anything the engine would not accept (unknown operators, data types,
// person filters) with file positions attached.
//
// Survey answer files are YAML, decoded strictly: an unknown field is an
// error, not a silent drop, because a typo in a question id produces a
// wrong legal document.
package config
