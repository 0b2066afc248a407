// Package models defines domain entities for the flixctl movie catalog client.
//
// The package contains two categories of types:
//
// 1. API records: typed views of the remote catalog's JSON responses
//   - [Movie] : catalog entry with embedded [Director] and [Genre]
//   - [UserProfile] : account data fetched for display and resubmitted in full on update
//   - [LoginResponse] : token plus user record returned by the login endpoint
//
// 2. Client-side state:
//   - [Session] : the authenticated identity (token + username) held between login and logout
//   - [FavoriteSet] : ordered movie identifiers mirrored wholesale from the server
//
// The remote service serializes fields in PascalCase ("Username", "FavoriteMovies",
// "_id"); the JSON tags here preserve that wire shape exactly.
package models
