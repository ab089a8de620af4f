// Package main hosts the somscan CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into candidate
// submissions, poll runs against the analysis service, local estimates, and
// submission history maintenance. It centralizes configuration resolution,
// logger construction, and history store access so subcommands can focus on
// user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
// That separation keeps the CLI declarative while the heavy lifting lives in
// reusable workflow components.
package main
