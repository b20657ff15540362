/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns a single configuration entity, stored under a key derived
from the extension name. The initial state is loaded from the genesis file
using InitConfig, and accessed at runtime via Load. Updates go through Save,
that always validates the configuration before it is written.
*/
package gconf
