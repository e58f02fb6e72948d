// Package lifecycle persists and queries the MaLDReTH research data
// lifecycle taxonomy: twelve fixed stages, directed connections between
// them, and the tool categories and example tools each stage owns.
//
// The store is backed by SQLite (modernc.org/sqlite). The schema script
// creates all tables and seeds the stages and connections; categories and
// tools arrive later through the CSV importer. After seeding the application
// treats the database as read-only, so every query is a plain snapshot read
// with no locking beyond SQLite's own.
package lifecycle
