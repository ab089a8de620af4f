// Package jsonp fetches JSON payloads through a script-callback side channel.
//
// The analysis service answers script requests with a statement that invokes a
// caller-named function, passing the payload as the sole argument. Instead of
// mutating any global namespace, the bridge keeps an explicit registry of
// pending callback tokens: Register hands out a single-use handle, Resolve
// delivers a payload to whoever holds the token, and every completion path
// removes the registry entry so a token can settle at most once.
//
// Bridge.Fetch drives one full round trip: it registers a fresh token, loads
// the endpoint as a script with the token as the callback parameter, parses
// the returned invocation, and waits for resolution, a load failure, or the
// timeout, whichever comes first.
package jsonp
