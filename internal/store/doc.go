// Package store provides durable SQLite storage for surveys, template
// configurations, and generated variable maps.
//
// The database runs in WAL mode with a single writer connection;
// migrations are tracked through PRAGMA user_version. Answer sets and
// template configurations are stored as JSON payloads: their shapes are
// polymorphic and always read whole.
package store
