/*
Package collectible implements semi-fungible collectibles.

A collectible is created with a name and an initial supply owned by its
creator. Each collectible is identified by a sequential number and can be
held in any amount by many holders. Balances are stored per (collectible,
holder) pair.
*/
package collectible
