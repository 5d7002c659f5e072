/*
Package kv provides a client for the host key-value capability.

The client serializes requests with project protobufs, forwards them to the
host with waPC, and maps the host status onto the package errors. Zero-value
Config options fall back to defaults such as cerberus.DefaultNamespace and the
default waPC host call.

Typical usage is to construct a client with New, then invoke Set, Get, Delete,
and Keys. Tests inject hostmock.Mock.HostCall through Config.HostCall to
declare the exact host calls the client must make.
*/
package kv
