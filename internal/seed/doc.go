// Package seed imports the MaLDReTH tools CSV into the lifecycle store.
//
// Each row names a lifecycle stage, a tool category, a one-sentence
// description, and a comma-separated list of example tools. Rows with a
// missing or unknown stage, or an empty category, are skipped and counted.
// Inserts are conflict-ignoring upserts keyed on (stage, category) and
// (category, tool), so re-importing the same file adds nothing. A flock file
// beside the database keeps concurrent imports from interleaving.
package seed
