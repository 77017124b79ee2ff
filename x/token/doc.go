/*
Package token implements a fungible token contract.

Balances of every deployed token are kept in a single bucket, under the
token address followed by the holder address. The only operation is a
transfer of tokens from the caller to a recipient.

Tokens differ in what a successful transfer returns. Some return a true
boolean, other return no data at all. Both behaviours are supported, so
that callers can be tested against either.
*/
package token
