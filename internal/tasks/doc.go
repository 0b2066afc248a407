// Package tasks orchestrates the session lifecycle and favorites
// synchronization on top of the catalog client.
//
// # Account Flow
//
// [AccountFlow] owns every transition between the anonymous and authenticated
// states:
//
//  1. [AccountFlow.Login] : exchange credentials, persist token and username as a pair
//  2. [AccountFlow.Register] : create the account, then immediately log in with
//     the same credentials; a registration failure never attempts the login,
//     and a login failure after a successful registration surfaces the error
//     without rolling back the created account (the remote service offers no
//     transactional guarantee)
//  3. [AccountFlow.Logout] : clear all persisted session keys in one operation
//  4. [AccountFlow.DeleteAccount] : fire-and-forget — local session state is
//     cleared whether or not the remote deletion succeeds
//
// # Favorites Engine
//
// [FavoritesEngine] mirrors the server-side favorite list and keeps it
// consistent enough for add/remove affordances:
//
//   - membership is an exact identifier match against the mirrored set
//   - [FavoritesEngine.Toggle] removes a member and adds a non-member, then
//     refetches the whole list rather than applying a local delta
//   - a failed mutation leaves the mirrored set untouched; nothing retries
//   - results arriving after a logout are discarded by a still-authenticated
//     check before any write
package tasks
