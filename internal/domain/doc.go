// Package domain contains the triangle model and the calculator.
//
// The domain does not depend on YAML parsing, the CLI, or the filesystem.
// Infra/adapters map into/from these types.
package domain
