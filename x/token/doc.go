/*
Package token implements fungible assets identified by an asset id.

Holdings are stored per (asset id, holder) pair. Unlike the native assets
kept by the cash extension, no registration is required to receive a token.
A holding with zero amount is removed from the store.
*/
package token
