// Package services implements the typed HTTP client for the myFlix movie
// catalog REST service.
//
// # Catalog Interface
//
// [Catalog] abstracts every remote operation the client performs. One method
// maps to exactly one HTTP request; no method retries, caches, or issues
// follow-up calls. [CatalogService] is the production implementation.
//
// # Session Handling
//
// The session is an injected [session.Store], never ambient state. Every
// authenticated method reads the store fresh at call time, so a token saved
// by a login in the same process is visible to the next call without any
// reload. A call made with an incomplete session fails with
// [shared.ErrNotAuthenticated] before any network I/O — the client refuses
// to send an empty bearer token.
//
// # Error Handling
//
// Failures collapse into sentinel errors from the shared package:
//   - [shared.ErrNotAuthenticated] : authenticated call without a complete session
//   - [shared.ErrAPIRequest] : transport-level failure, the request never completed
//   - [shared.ErrRequestRejected] : any non-2xx response, status and body preserved in the message
//   - [shared.ErrParse] : a 2xx response whose body did not decode into the expected record
//
// Callers classify with errors.Is; no per-status taxonomy is exposed.
//
// # Favorites Shape
//
// The service returns favorites either as a bare JSON array of movie ids or
// as a user object carrying a "FavoriteMovies" field, depending on endpoint.
// decodeFavorites normalizes both to [models.FavoriteSet] in one place.
package services
