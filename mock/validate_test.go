package mock

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// lines renders each diagnostic of a report.
func lines(r *Report) []string {
	out := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		out = append(out, d.String())
	}
	return out
}

func kinds(r *Report) []Kind {
	out := make([]Kind, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		out = append(out, d.Kind)
	}
	return out
}

func TestValidateSequence(t *testing.T) {
	dev := &device{id: 1}

	// expect declares value_func(1), buffer_func(ANY, 0x4), void_func().
	expect := func(g *GomegaWithT, m *Mock) {
		g.Expect(m.Expect(funcValue, dev, 0, Eq(1))).To(Succeed())
		g.Expect(m.Expect(funcBuffer, dev, 0, Any(), Eq(4))).To(Succeed())
		g.Expect(m.Expect(funcVoid, dev, 0)).To(Succeed())
	}

	t.Run("Replay", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "seq")
		expect(g, m)

		m.Record(funcValue, dev, 1)
		m.Record(funcBuffer, dev, 0x100, 4)
		m.Record(funcVoid, dev)

		r := m.Validate()
		g.Expect(r.Passed()).To(BeTrue())
		g.Expect(r.Diagnostics).To(BeEmpty())
		g.Expect(r.String()).To(BeEmpty())
	})

	t.Run("Dropped Call", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "seq")
		expect(g, m)

		m.Record(funcValue, dev, 1)
		m.Record(funcVoid, dev)

		r := m.Validate()
		g.Expect(r.Passed()).To(BeFalse())
		g.Expect(lines(r)).To(Equal([]string{
			"(seq) Unexpected number of function calls: expected=3, actual=2",
			fmt.Sprintf("(seq, 1) Not called: buffer_func (%p, ANY, 0x4)", dev),
		}))
	})

	t.Run("Dropped First Call", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "seq")
		expect(g, m)

		m.Record(funcBuffer, dev, 0x100, 4)
		m.Record(funcVoid, dev)

		r := m.Validate()
		g.Expect(kinds(r)).To(Equal([]Kind{KindCallCount, KindNotCalled}))
		g.Expect(r.Diagnostics[1].Index).To(Equal(0))
	})

	t.Run("Extra Call", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "seq")
		expect(g, m)

		m.Record(funcValue, dev, 1)
		m.Record(funcOut, dev, 0x200, 8)
		m.Record(funcBuffer, dev, 0x100, 4)
		m.Record(funcVoid, dev)

		r := m.Validate()
		g.Expect(lines(r)).To(Equal([]string{
			"(seq) Unexpected number of function calls: expected=3, actual=4",
			fmt.Sprintf("(seq, before 1) Unexpected call: out_func (%p, 0x200, 0x8)", dev),
		}))
	})

	t.Run("Trailing Calls", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "seq")
		expect(g, m)

		m.Record(funcValue, dev, 1)
		m.Record(funcBuffer, dev, 0x100, 4)
		m.Record(funcVoid, dev)
		m.Record(funcVoid, dev)
		m.Record(funcValue, dev, -2)

		r := m.Validate()
		g.Expect(lines(r)).To(Equal([]string{
			"(seq) Unexpected number of function calls: expected=3, actual=5",
			fmt.Sprintf("(seq, after 3) Unexpected call: void_func (%p)", dev),
			fmt.Sprintf("(seq, after 3) Unexpected call: value_func (%p, -0x2)", dev),
		}))
	})

	t.Run("Nothing Called", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "seq")
		expect(g, m)

		r := m.Validate()
		g.Expect(kinds(r)).To(Equal([]Kind{KindCallCount, KindNotCalled, KindNotCalled, KindNotCalled}))
		for i, d := range r.Diagnostics[1:] {
			g.Expect(d.Index).To(Equal(i))
		}
	})

	t.Run("Same Count Different Calls", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "seq")
		expect(g, m)

		m.Record(funcValue, dev, 1)
		m.Record(funcOut, dev, 0, 0)
		m.Record(funcVoid, dev)

		// Every mismatch is listed even though the counts agree.
		r := m.Validate()
		g.Expect(kinds(r)).To(Equal([]Kind{KindUnexpectedCall, KindNotCalled}))
		g.Expect(r.Diagnostics[0].Position).To(Equal("before"))
		g.Expect(r.Diagnostics[0].Index).To(Equal(1))
		g.Expect(r.Diagnostics[1].Index).To(Equal(1))
	})

	t.Run("Independent Of Recording Order", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "seq")

		g.Expect(m.Expect(funcValue, dev, 10, Eq(1))).To(Succeed())
		g.Expect(m.Expect(funcVoid, dev, 20)).To(Succeed())

		// Recording skips ahead to void_func, so the later value_func call gets no return value.
		g.Expect(m.Record(funcVoid, dev)).To(Equal(Value(20)))
		g.Expect(m.Record(funcValue, dev, 1)).To(Equal(Value(0)))

		r := m.Validate()
		g.Expect(kinds(r)).To(Equal([]Kind{KindNotCalled, KindUnexpectedCall}))
		g.Expect(lines(r)[1]).To(Equal(fmt.Sprintf("(seq, after 2) Unexpected call: value_func (%p, 0x1)", dev)))
	})
}

func TestValidateCall(t *testing.T) {
	t.Run("Instance", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "inst")
		dev, other := &device{id: 1}, &device{id: 2}

		g.Expect(m.Expect(funcVoid, dev, 0)).To(Succeed())
		m.Record(funcVoid, other)

		g.Expect(lines(m.Validate())).To(Equal([]string{
			fmt.Sprintf("(inst, 0) Unexpected object instance: expected=%p, actual=%p", dev, other),
		}))
	})

	t.Run("Non Pointer Instance", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "inst")

		g.Expect(m.Expect(funcVoid, "primary", 0)).To(Succeed())
		g.Expect(m.Expect(funcVoid, []int{1}, 0)).To(Succeed())
		m.Record(funcVoid, "secondary")
		m.Record(funcVoid, []int{1})

		g.Expect(lines(m.Validate())).To(Equal([]string{
			"(inst, 0) Unexpected object instance: expected=primary, actual=secondary",
			"(inst, 1) Unexpected object instance: expected=[1], actual=[1]",
		}))
	})

	t.Run("Argument Count", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "count")

		g.Expect(m.Expect(funcBuffer, nil, 0, Eq(1), Eq(2))).To(Succeed())
		m.Record(funcBuffer, nil, 1)

		g.Expect(lines(m.Validate())).To(Equal([]string{
			"(count, 0) Unexpected number of arguments: expected=2, actual=1",
		}))
	})
}

func TestValidateArg(t *testing.T) {
	errMismatch := errors.New("checksum mismatch")

	tt := []struct {
		name   string
		arg    Arg
		record func(a *Arena) Value
		want   []string
	}{
		{
			name:   "Exact Match",
			arg:    Eq(5),
			record: func(*Arena) Value { return 5 },
		},
		{
			name:   "Exact Mismatch",
			arg:    Eq(5),
			record: func(*Arena) Value { return 6 },
			want:   []string{"(arg, 0) Unexpected argument: name=data, expected=0x5, actual=0x6"},
		},
		{
			name:   "Zero Value Arg",
			arg:    Arg{},
			record: func(*Arena) Value { return 0 },
		},
		{
			name:   "Any",
			arg:    Any(),
			record: func(*Arena) Value { return -1 },
		},
		{
			name:   "Not Null",
			arg:    NotNull(),
			record: func(*Arena) Value { return 0x10 },
		},
		{
			name:   "Null",
			arg:    NotNull(),
			record: func(*Arena) Value { return 0 },
			want:   []string{"(arg, 0) Unexpected NULL argument: name=data"},
		},
		{
			name:   "Contents Match",
			arg:    PtrContainsTmp([]byte{1, 2, 3, 4}),
			record: func(a *Arena) Value { return a.AllocBytes([]byte{1, 2, 3, 4}) },
		},
		{
			name:   "Contents Mismatch",
			arg:    PtrContainsTmp([]byte{1, 2, 3, 4}),
			record: func(a *Arena) Value { return a.AllocBytes([]byte{1, 2, 3, 9}) },
			want:   []string{"(arg, 0, arg=data) Byte 3: expected=0x04, actual=0x09"},
		},
		{
			name:   "Contents Multiple Mismatches",
			arg:    PtrContainsTmp([]byte{1, 2, 3, 4}),
			record: func(a *Arena) Value { return a.AllocBytes([]byte{0, 2, 3, 0}) },
			want: []string{
				"(arg, 0, arg=data) Byte 0: expected=0x01, actual=0x00",
				"(arg, 0, arg=data) Byte 3: expected=0x04, actual=0x00",
			},
		},
		{
			name:   "Contents Null",
			arg:    PtrContainsTmp([]byte{1, 2, 3, 4}),
			record: func(*Arena) Value { return 0 },
			want: []string{
				"(arg, 0) Unexpected NULL argument: name=data",
				"(arg, 0) No pointer contents to validate: name=data",
			},
		},
		{
			name:   "Contents Too Short",
			arg:    PtrContainsTmp([]byte{1, 2, 3, 4}),
			record: func(a *Arena) Value { return a.AllocBytes([]byte{1, 2}) },
			want:   []string{"(arg, 0) No pointer contents to validate: name=data"},
		},
		{
			name: "Validator Match",
			arg: ValidateTmp(func(expected, actual []byte) error {
				if expected[0]+1 != actual[0] {
					return errMismatch
				}
				return nil
			}, []byte{1}),
			record: func(a *Arena) Value { return a.AllocBytes([]byte{2}) },
		},
		{
			name: "Validator Mismatch",
			arg: Validate(func(_, _ []byte) error {
				return errMismatch
			}, []byte{1}),
			record: func(a *Arena) Value { return a.AllocBytes([]byte{1}) },
			want:   []string{"(arg, 0, arg=data) checksum mismatch"},
		},
		{
			name:   "Pointer To Pointer",
			arg:    NotNull().PtrPtr(),
			record: func(a *Arena) Value { return a.AllocPointer(a.Alloc(4)) },
		},
		{
			name:   "Pointer To NULL Pointer",
			arg:    NotNull().PtrPtr(),
			record: func(a *Arena) Value { return a.AllocPointer(0) },
			want:   []string{"(arg, 0) Unexpected NULL argument: name=data"},
		},
		{
			name:   "NULL Pointer To Pointer",
			arg:    NotNull().PtrPtr(),
			record: func(*Arena) Value { return 0 },
			want:   []string{"(arg, 0) Unexpected NULL pointer to pointer: name=data"},
		},
		{
			name:   "Unknown Saved Argument",
			arg:    SavedArg(8),
			record: func(*Arena) Value { return 1 },
			want:   []string{"(arg, 0) Unknown saved argument ID: id=8"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			m := newTestMock(t, "arg")
			arena := m.Memory().(*Arena)

			g.Expect(m.Expect(funcBuffer, nil, 0, tc.arg, Any())).To(Succeed())
			m.Record(funcBuffer, nil, tc.record(arena), 0)

			r := m.Validate()
			if tc.want == nil {
				g.Expect(r.Diagnostics).To(BeEmpty())
				return
			}
			g.Expect(lines(r)).To(Equal(tc.want))
		})
	}
}

func TestValidateSavedArg(t *testing.T) {
	t.Run("Not Saved", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "saved")

		g.Expect(m.Expect(funcValue, nil, 0, Any())).To(Succeed())
		g.Expect(m.ExpectSaveArg(0, 0)).To(Succeed())
		g.Expect(m.Expect(funcVoid, nil, 0)).To(Succeed())
		g.Expect(m.Expect(funcValue, nil, 0, SavedArg(0))).To(Succeed())

		// Recording void_func first leaves the saving expectation behind the cursor.
		m.Record(funcVoid, nil)
		m.Record(funcValue, nil, 3)

		r := m.Validate()
		g.Expect(lines(r)).To(ContainElement("(saved, 2) Argument ID 0 value not saved."))
	})

	t.Run("Saved Across Calls", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "saved")
		arena := m.Memory().(*Arena)

		g.Expect(m.Expect(funcOut, nil, 0, NotNull(), Any())).To(Succeed())
		g.Expect(m.ExpectSaveArg(0, 0)).To(Succeed())
		g.Expect(m.Expect(funcBuffer, nil, 0, SavedArg(0), Eq(4))).To(Succeed())

		buf := arena.Alloc(4)
		m.Record(funcOut, nil, buf, 4)
		m.Record(funcBuffer, nil, buf, 4)

		g.Expect(m.Validate().Passed()).To(BeTrue())
	})
}

// halfMemory returns only the first half of every read.
type halfMemory struct {
	*Arena
}

func (h halfMemory) Read(addr Value, length int) ([]byte, error) {
	b, err := h.Arena.Read(addr, length)
	if err != nil {
		return nil, err
	}
	return b[:len(b)/2], nil
}

func TestValidateShortContents(t *testing.T) {
	t.Run("Interleaved Declarations", func(t *testing.T) {
		g := NewGomegaWithT(t)
		m := newTestMock(t, "short")
		arena := m.Memory().(*Arena)

		g.Expect(m.Expect(funcVoid, nil, 0)).To(Succeed())
		m.Record(funcValue, nil, 1)

		// The next call is recorded against the 4 byte expectation but validated against the
		// 8 byte one.
		g.Expect(m.Expect(funcValue, nil, 0, PtrContains([]byte{1, 2, 3, 4}))).To(Succeed())
		g.Expect(m.Expect(funcValue, nil, 0, PtrContains([]byte{1, 2, 3, 4, 5, 6, 7, 8}))).To(Succeed())
		m.Record(funcValue, nil, arena.AllocBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8}))

		var r *Report
		g.Expect(func() { r = m.Validate() }).NotTo(Panic())
		g.Expect(kinds(r)).To(Equal([]Kind{KindCallCount, KindNotCalled, KindNoContents, KindNoContents}))
		g.Expect(lines(r)).To(ContainElement("(short, 2) No pointer contents to validate: name=value"))
	})

	t.Run("Short Memory Read", func(t *testing.T) {
		g := NewGomegaWithT(t)
		core, logs := observer.New(zap.WarnLevel)
		arena := NewArena()

		m, err := New(Config{Name: "short", Funcs: testFuncs, Memory: halfMemory{arena}, Logger: zap.New(core)})
		g.Expect(err).NotTo(HaveOccurred())

		g.Expect(m.Expect(funcBuffer, nil, 0, PtrContains([]byte{1, 2, 3, 4}), Eq(4))).To(Succeed())
		m.Record(funcBuffer, nil, arena.AllocBytes([]byte{1, 2, 3, 4}), 4)

		var r *Report
		g.Expect(func() { r = m.Validate() }).NotTo(Panic())
		g.Expect(lines(r)).To(Equal([]string{"(short, 0) No pointer contents to validate: name=data"}))

		warned := logs.FilterMessage("short read of pointer contents").All()
		g.Expect(warned).To(HaveLen(1))
		g.Expect(warned[0].ContextMap()).To(HaveKeyWithValue("mock", "short"))
		g.Expect(warned[0].ContextMap()).To(HaveKeyWithValue("func", "buffer_func"))
		g.Expect(warned[0].ContextMap()).To(HaveKeyWithValue("arg", int64(0)))
	})
}
