/*
Package cerberus holds the runtime configuration and errors shared by the packages of this module.

The module is built around package mock, a call-expectation engine for test doubles. The other
packages use it:

  - flash defines a flash device and converts SPI flash addresses, and flash/mock doubles it.
  - kv is a key/value client that talks to its host over waPC, and hostmock doubles that host.
  - cmd/flashaddr converts flash addresses from the command line.

RuntimeConfig is shared by kv and hostmock. DefaultNamespace is used when a namespace is not
explicitly provided.
*/
package cerberus
