// Package migrations contains the schema migration files. Each file
// registers itself in an init(), so importing this package from the CLI
// is enough to make every migration available.
package migrations
