// Package vocab holds the immutable vocabulary deck shown by the viewer.
// The built-in deck is compiled in; an alternative deck can be loaded
// once at startup from a YAML file.
package vocab
