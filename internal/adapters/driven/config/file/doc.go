// Package file persists CLI configuration as a TOML file under the
// user's .juribot directory. Nested TOML tables are flattened to
// dot-notation keys ("llm.provider") so the settings service can
// address values uniformly.
package file
