/*
Package x contains the extensions of the vault engine and the helpers they
share.

Extensions implement common functionality (Handler, Decorator, Initializer,
controllers) and are combined together by the application. The asset
extensions (cash, token, collectible, object) are the transfer collaborators
used by the vault extension, that implements the multi-party approval logic.
*/
package x
