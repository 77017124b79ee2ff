/*
Package custody implements a vault holding native value and tokens on
behalf of a single admin.

Only the admin can withdraw from a vault. Token withdrawals accept tokens
that return a true boolean as well as tokens that return no data on
success.
*/
package custody
