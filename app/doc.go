/*
Package app contains the building blocks used to assemble handlers into
contracts and contracts into a ledger.

Call data of a contract call is a serialized CallMsg envelope holding a
message path and the serialized message. A Codec maps paths to message
types, a Router maps paths to handlers and a Contract puts both behind the
single call entry point the ledger expects.
*/
package app
