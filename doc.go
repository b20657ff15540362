/*
Package weave defines the interfaces shared by the vault engine and its
extensions: storage, messages, handlers, decorators, conditions and addresses.

Values travel between the app, middleware and handlers through a
context.Context. Every value XYZ of type T kept in the context comes with two
helpers:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so that lower level modules
cannot overwrite what the application has declared (eg. height, chain id).
*/
package weave
