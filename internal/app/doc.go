// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generation pipeline, decoupled from any
// specific entrypoint like a CLI.
//
// A run loads every specification, registers all modules, renders every
// artifact in memory and only then commits the files that changed. Any
// error before the commit leaves the output directory untouched.
package app
