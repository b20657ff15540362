/*
Package vault implements multi-party approval vaults.

A vault is governed by a fixed set of participants and two thresholds. Any
active participant can create a proposal carrying exactly one action: a
membership change or a withdrawal of one asset type from the vault
treasury. The creator posts the proposal, participants vote to approve or
to cancel it, and once enough approvals are collected and the cancellation
threshold was not reached, any active participant can execute it. A
proposal is executed at most once.

Whether a proposal is approved or cancelled is never stored. It is computed
from the vote counts and the vault thresholds on every execution attempt.

Native asset withdrawals are declared in a side ledger keyed by the asset
kind, the vault and the proposal, because the treasury must be registered
for a native asset kind before it can hold it. All other withdrawals carry
their complete transfer list within the proposal and execute in a single
call.
*/
package vault
