/*
Package multisig implements a wallet controlled by a set of owners.

Any owner can submit a transaction: an ordered list of actions, each being a
call to another account with a value and call data. Only the commitment of
every action is stored. A transaction is executed once the number of owners
that confirmed it reaches the required threshold. Data of every action is
supplied again at execution time and must match the stored commitments.

The owner set and the threshold can be changed only by the wallet itself,
which means as an action of a transaction targeting the wallet address.

Execution of a transaction is atomic. If any of its actions fails, the
whole invocation that triggered the execution is rolled back.
*/
package multisig
