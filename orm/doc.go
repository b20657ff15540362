/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* It has a primary index, either given by the caller or assigned
by a sequence.
* It may possess one or more secondary indexes (1:1 or 1:N)
* Easy queries for one, for all under an index key and for a
prefix of the primary key.

Models are serialized by the model itself (see weave.Persistent), which
allows each extension to use its own codec.
*/
package orm
