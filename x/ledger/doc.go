/*
Package ledger implements the execution substrate contracts run on.

Every account holds a native balance. Contracts are Go code deployed at an
address when the ledger is built; they are never stored in the database. A
call moves value from the caller to the callee and runs the callee contract,
if any, inside a savepoint. A failing call is rolled back together with all
events it emitted and is reported to the caller as a failed CallResult, so
that the caller can decide whether to fail as well.

A top-level invocation is a call issued by an external account. It runs
through the decorator stack recovering panics, logging the invocation and
rolling back all changes when the invocation fails.
*/
package ledger
