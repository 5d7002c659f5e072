/*
Package mock is a call-expectation engine for building test doubles.

A test declares, in order, the calls the code under test should make against a collaborator. A
test double for that collaborator records every call it receives with Record, which also returns
the declared value and fills any output arguments. When the test is done, Validate walks the
declared and recorded calls together and reports every difference.

# Describing the mocked interface

Functions are identified by a Func. A Table names each function and its arguments:

	const (
		funcRead mock.Func = iota
		funcWrite
	)

	var funcs = mock.Table{
		funcRead:  {Name: "read", Args: []string{"address", "data", "length"}},
		funcWrite: {Name: "write", Args: []string{"address", "data", "length"}},
	}

	m, _ := mock.New(mock.Config{Name: "flash", Funcs: funcs})

# Memory

Arguments are Values: integers or addresses. A double maps the buffers it is given into the
Mock's Memory (an Arena by default) and records their addresses, so the Mock can check pointer
contents and write output data without touching Go pointers.

# Declaring expectations

	m.Expect(funcRead, dev, 0, mock.Eq(0x1000), mock.NotNull(), mock.Eq(16))
	m.ExpectOutputTmp(1, data, 2)

	m.Expect(funcWrite, dev, 4, mock.Eq(0x2000), mock.PtrContainsTmp(payload), mock.Eq(4))
	m.ExpectSaveArg(1, 0)

	m.Expect(funcWrite, dev, 4, mock.Any(), mock.SavedArg(0), mock.Any())

Output data and saved arguments apply to the most recent expectation. A saved argument can be
shared with another Mock with ShareSaveArg.

# Verifying

	mock.Verify(t, m)

or, to route the diagnostics elsewhere:

	report := m.Validate()
	if !report.Passed() {
		fmt.Print(report)
	}
*/
package mock
