/*
Package hostmock provides a friendly pretend host for waPC calls.

It's designed for tests where you want to validate exactly what a component is sending to its
host, in order, without needing a real host running. Every call is recorded by a call-expectation
engine (package mock), so a test declares the calls it expects up front and validates them all at
the end.

Why use hostmock?

  - Validate routing: every call must use the configured namespace, and each capability:function
    pair is a separate function to the engine.
  - Inspect payloads: match request bytes exactly with Payload, or by protobuf equality with
    ProtoPayload.
  - Script responses: return bytes or simulate host-side failures, call by call.

Quick start

	m, _ := hostmock.New(hostmock.Config{
	  SDKConfig: cerberus.RuntimeConfig{Namespace: "tarmac"},
	})

	m.Expect("kvstore", "get", hostmock.ProtoPayload(&kvstore.KVStoreGet{Key: "a"}), resp)
	m.ExpectFailure("kvstore", "set", mock.Any(), errors.New("host failure"))

	// Inject into a component under test
	client, _ := kv.New(kv.Config{HostCall: m.HostCall})

	// ...

	mock.Verify(t, m.Engine())

Behavior

  - A call outside the configured namespace returns ErrUnexpectedNamespace and is not recorded.
  - A call matching a declared failure returns the declared error, or ErrOperationFailed.
  - A call matching a declared response returns a copy of it, truncated to ResponseCapacity.
  - A call with no expectation returns nil bytes and no error; Validate reports it.

The engine sees each call as capability:function(payload, payload_len, response, response_cap).
Use Route and Engine to declare saved arguments or custom matches against those arguments.
*/
package hostmock
