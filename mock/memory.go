package mock

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// PointerSize is the number of bytes a pointer occupies in Memory.
const PointerSize = 8

// Memory gives the Mock access to the data behind pointer arguments. Doubles map every buffer
// passed to them into the Memory of their Mock and record its address.
//
// The Mock trusts that every non-zero address it is handed belongs to this Memory.
type Memory interface {
	// Read returns a copy of length bytes starting at addr.
	Read(addr Value, length int) ([]byte, error)

	// Write copies data to the bytes starting at addr.
	Write(addr Value, data []byte) error
}

const (
	arenaBase  = Value(0x10000)
	arenaAlign = 16
)

type region struct {
	base Value
	data []byte
}

// Arena is a simulated address space backed by Go slices. Regions are never reused and an access
// must fall entirely within one region.
type Arena struct {
	regions []region
	next    Value
}

// Ensure Arena satisfies the Memory interface at compile time.
var _ Memory = (*Arena)(nil)

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{next: arenaBase}
}

// Alloc maps a zeroed region of size bytes and returns its address.
func (a *Arena) Alloc(size int) Value {
	if size < 0 {
		size = 0
	}

	base := a.next
	a.regions = append(a.regions, region{base: base, data: make([]byte, size)})

	// Leave a gap after every region so an overrun lands on unmapped space.
	a.next = base + Value((size/arenaAlign+2)*arenaAlign)
	return base
}

// AllocBytes maps a copy of data and returns its address.
func (a *Arena) AllocBytes(data []byte) Value {
	addr := a.Alloc(len(data))
	copy(a.regions[len(a.regions)-1].data, data)
	return addr
}

// AllocPointer maps a pointer holding target and returns the address of the pointer.
func (a *Arena) AllocPointer(target Value) Value {
	var ptr [PointerSize]byte
	binary.LittleEndian.PutUint64(ptr[:], uint64(target))
	return a.AllocBytes(ptr[:])
}

// Bytes returns the live contents of the region starting at addr through its end. Writes made by
// the Mock are visible in the returned slice.
func (a *Arena) Bytes(addr Value) ([]byte, error) {
	r, off, err := a.find(addr, 0)
	if err != nil {
		return nil, err
	}
	return r.data[off:], nil
}

// Read implements Memory.
func (a *Arena) Read(addr Value, length int) ([]byte, error) {
	r, off, err := a.find(addr, length)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), r.data[off:off+length]...), nil
}

// Write implements Memory.
func (a *Arena) Write(addr Value, data []byte) error {
	r, off, err := a.find(addr, len(data))
	if err != nil {
		return err
	}
	copy(r.data[off:], data)
	return nil
}

// find locates the region holding [addr, addr+length).
func (a *Arena) find(addr Value, length int) (*region, int, error) {
	if length < 0 {
		return nil, 0, fmt.Errorf("%w: negative length %d", ErrBadAddress, length)
	}

	i := sort.Search(len(a.regions), func(i int) bool {
		return a.regions[i].base > addr
	}) - 1
	if i < 0 {
		return nil, 0, fmt.Errorf("%w: 0x%x", ErrBadAddress, addr)
	}

	r := &a.regions[i]
	off := int(addr - r.base)
	if off+length > len(r.data) || (length == 0 && off > len(r.data)) {
		return nil, 0, fmt.Errorf("%w: 0x%x+%d", ErrBadAddress, addr, length)
	}
	return r, off, nil
}

// readPointer reads the pointer stored at addr.
func readPointer(mem Memory, addr Value) (Value, error) {
	b, err := mem.Read(addr, PointerSize)
	if err != nil {
		return 0, err
	}
	return Value(binary.LittleEndian.Uint64(b)), nil
}
