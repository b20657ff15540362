/*
Package cash implements the native assets of the chain.

Each wallet holds a balance per asset kind. A wallet can receive a kind only
after it was registered for it, which is done either explicitly (RegisterMsg,
Controller.Register) or when the kind is issued to the wallet. There is no
logic in the assets, except that a balance may not go below zero.
*/
package cash
