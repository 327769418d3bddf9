// Package config resolves runtime settings from defaults, an optional
// config file, a .env file and CPBL_* environment variables.
//
// Later sources win: defaults < config file < environment. Command-line
// flags are bound on top by the cli package.
package config
