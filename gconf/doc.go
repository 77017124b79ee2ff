/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps a single configuration object stored under the
"_c:<package name>" key. The configuration is loaded from the "conf" section
of the genesis file and read back by the extension when needed. An extension
that finds no configuration falls back to its defaults.
*/
package gconf
