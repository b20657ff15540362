/*
Package object implements digital objects, each owned by a single address.

Objects are created with sequential ids starting at 1. Only the current
owner can pass an object on.
*/
package object
