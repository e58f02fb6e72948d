// Package server exposes the lifecycle taxonomy over HTTP.
//
// It serves four HTML views (search, lifecycle visualization, category
// browsing, about) rendered from embedded templates, plus a small JSON API
// mirroring the store's read queries. The lifecycle diagram is emitted as
// inline SVG with each node linking back to the view with that stage
// selected via the `stage` query parameter. Every request carries a uuid
// correlation id that threads through the access log and error responses.
package server
