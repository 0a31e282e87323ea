// Package pg provides utilities for interacting with PostgreSQL using the
// pgx/v5 driver: connection pooling with startup retries, goose schema
// migrations, a health check closure, and helpers for classifying common
// database errors (not found, unique violation, foreign key violation).
//
// Configuration comes from environment variables via the Config struct; see
// the field tags for variable names and defaults.
package pg
