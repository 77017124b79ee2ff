/*
Package x contains the standard extensions of quorum.

Extensions are contracts (ledger, multisig, token, custody) and the
decorators in x/utils that run every invocation. This package holds the
Authenticator interface they share.
*/
package x
