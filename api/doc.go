// Package api exposes the editing session over HTTP.
//
// Routes live under /api and are served by a chi router. Every edit is turned into a
// store command; rejected commands map to 404 (KEY_NOT_FOUND), 422 (VALIDATION_ERROR) or
// 400 (PARSE_ERROR). Exports are parked in a memory sink until downloaded or released.
package api
