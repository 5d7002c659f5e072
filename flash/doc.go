/*
Package flash provides the Flash device interface and helpers for the address encoding used by
SPI flash commands.

Flash commands carry addresses as 3 or 4 big-endian bytes depending on the addressing mode of
the device. AddressToInt and IntToAddress convert between that encoding and a uint32.

	addr, err := flash.AddressToInt([]byte{0x20, 0x10, 0x30}, 3) // 0x201030

	buf := make([]byte, 4)
	err = flash.IntToAddress(0x11223344, 3, buf) // buf[:3] == {0x22, 0x33, 0x44}
*/
package flash
