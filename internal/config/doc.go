// Package config defines the format-agnostic document model for option
// specification files, along with the Loader interface that concrete
// formats (HCL, TOML) implement.
//
// A config.Document is the single input of the spec loader in the model
// package. Concrete implementations of Loader live in separate packages so
// the model never depends on a particular syntax.
package config
