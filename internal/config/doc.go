// Package config provides configuration management for rmpscrape.
//
// Configuration comes from three layers, in increasing priority:
//
//  1. Compiled-in defaults (NewConfig, DefaultSources)
//  2. A YAML sources file (.rmpscrape), discovered via an explicit path,
//     then the current directory, then the user's home directory
//  3. CLI flags parsed by the cmd package
//
// The resulting Config struct is passed down through the application by
// dependency injection. No package reads configuration from global state.
//
// Validation happens once, after all layers are merged, via Config.Validate.
// Validation errors are package-level sentinels so callers can use errors.Is.
package config
