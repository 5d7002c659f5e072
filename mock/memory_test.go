package mock

import (
	"bytes"
	"errors"
	"testing"
)

func TestArena(t *testing.T) {
	t.Run("Alloc", func(t *testing.T) {
		a := NewArena()

		first := a.Alloc(4)
		second := a.Alloc(0)
		third := a.Alloc(20)

		if first == 0 || second == 0 || third == 0 {
			t.Fatalf("allocated NULL address: %x %x %x", first, second, third)
		}
		if !(first < second && second < third) {
			t.Fatalf("addresses not increasing: %x %x %x", first, second, third)
		}

		b, err := a.Bytes(third)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(b, make([]byte, 20)) {
			t.Fatalf("expected zeroed region, got %x", b)
		}
	})

	t.Run("Read and Write", func(t *testing.T) {
		a := NewArena()
		addr := a.AllocBytes([]byte{1, 2, 3, 4, 5, 6})

		got, err := a.Read(addr+2, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(got, []byte{3, 4, 5}) {
			t.Fatalf("unexpected read: %x", got)
		}

		// Read returns a copy.
		got[0] = 0xff
		if err := a.Write(addr+4, []byte{0xaa, 0xbb}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		live, _ := a.Bytes(addr)
		if !bytes.Equal(live, []byte{1, 2, 3, 4, 0xaa, 0xbb}) {
			t.Fatalf("unexpected contents: %x", live)
		}
	})

	t.Run("Bad Address", func(t *testing.T) {
		a := NewArena()
		addr := a.AllocBytes([]byte{1, 2, 3, 4})
		next := a.Alloc(4)

		tt := []struct {
			name string
			addr Value
			len  int
		}{
			{name: "NULL", addr: 0, len: 1},
			{name: "Below Base", addr: arenaBase - 1, len: 1},
			{name: "Overrun", addr: addr + 2, len: 3},
			{name: "Gap", addr: addr + 8, len: 1},
			{name: "Past End", addr: next + 64, len: 1},
			{name: "Negative Length", addr: addr, len: -1},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := a.Read(tc.addr, tc.len); !errors.Is(err, ErrBadAddress) {
					t.Fatalf("expected %v from Read, got %v", ErrBadAddress, err)
				}
				if tc.len >= 0 {
					if err := a.Write(tc.addr, make([]byte, tc.len)); !errors.Is(err, ErrBadAddress) {
						t.Fatalf("expected %v from Write, got %v", ErrBadAddress, err)
					}
				}
			})
		}
	})

	t.Run("Pointer", func(t *testing.T) {
		a := NewArena()
		target := a.AllocBytes([]byte("target"))
		ptr := a.AllocPointer(target)

		got, err := readPointer(a, ptr)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != target {
			t.Fatalf("expected 0x%x, got 0x%x", target, got)
		}

		if _, err := readPointer(a, target+4); !errors.Is(err, ErrBadAddress) {
			t.Fatalf("expected %v, got %v", ErrBadAddress, err)
		}
	})
}
