// Package layout positions lifecycle stages and their connections for the
// diagram view.
//
// Two placement styles exist. The circle style spreads stages evenly around
// a ring. The zigzag style preserves the legacy placement from earlier
// releases, which alternated every node between two fixed coordinates, for
// anyone who wants output faithful to the old rendering.
package layout
