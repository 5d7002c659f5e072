/*
Package mock provides a test double for flash.Flash built on the call-expectation engine.

Each call made against the double is recorded by the engine. Buffers passed to Read and Write are
mapped into the engine's Arena, so tests can check the data written to the device and inject the
data a read returns.

	f, _ := mock.New(mock.Config{Name: "flash"})

	f.Expect(mock.FuncRead, f, 0, engine.Eq(0x1000), engine.NotNull(), engine.Eq(4))
	f.ExpectOutputTmp(1, []byte{1, 2, 3, 4}, 2)

	f.Expect(mock.FuncWrite, f, 4, engine.Eq(0x2000), engine.PtrContainsTmp(data), engine.Eq(4))

	// Exercise code that uses f as a flash.Flash.

	engine.Verify(t, f.Mock)

A non-zero status declared as the return value of an expectation is returned to the caller as an
error wrapping ErrStatus. Write treats a positive return value as the number of bytes written.
*/
package mock
