package flash

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for a missing buffer or an unsupported address length.
	ErrInvalidArgument = errors.New("invalid flash argument")
)

// Flash is a flash device that can be read, written, and erased.
type Flash interface {
	// DeviceSize returns the size of the device in bytes.
	DeviceSize() (uint32, error)

	// Read fills data with the contents of the device starting at address.
	Read(address uint32, data []byte) error

	// Write programs data at address and returns the number of bytes written.
	Write(address uint32, data []byte) (int, error)

	// SectorErase erases the sector containing address.
	SectorErase(address uint32) error
}

// checkLength validates an address length against the buffer holding it.
func checkLength(buf []byte, length int) error {
	if buf == nil {
		return fmt.Errorf("%w: nil address buffer", ErrInvalidArgument)
	}

	if length != 3 && length != 4 {
		return fmt.Errorf("%w: address length %d", ErrInvalidArgument, length)
	}

	if len(buf) < length {
		return fmt.Errorf("%w: buffer of %d bytes for %d byte address", ErrInvalidArgument, len(buf), length)
	}

	return nil
}

// AddressToInt decodes a big-endian address of length bytes (3 or 4) from the start of buf.
func AddressToInt(buf []byte, length int) (uint32, error) {
	if err := checkLength(buf, length); err != nil {
		return 0, err
	}

	var address uint32
	for _, b := range buf[:length] {
		address = address<<8 | uint32(b)
	}
	return address, nil
}

// IntToAddress encodes address as length bytes (3 or 4) big-endian at the start of buf. With a
// length of 3 the most significant byte of address is dropped.
func IntToAddress(address uint32, length int, buf []byte) error {
	if err := checkLength(buf, length); err != nil {
		return err
	}

	for i := length - 1; i >= 0; i-- {
		buf[i] = byte(address)
		address >>= 8
	}
	return nil
}
