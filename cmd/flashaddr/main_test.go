package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/neerajladkani/Project-Cerberus/flash"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func TestParseArgs(t *testing.T) {
	t.Run("To Int", func(t *testing.T) {
		g := NewGomegaWithT(t)

		args, err := parseArgs([]string{"to-int", "--width", "4", "0x20103040"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(args.command).To(Equal(cmdToInt))
		g.Expect(args.width).To(Equal(4))
		g.Expect(args.data).To(Equal([]byte{0x20, 0x10, 0x30, 0x40}))
		g.Expect(args.verbose).To(BeFalse())
	})

	t.Run("To Bytes", func(t *testing.T) {
		g := NewGomegaWithT(t)

		args, err := parseArgs([]string{"--verbose", "to-bytes", "0x11223344"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(args.command).To(Equal(cmdToBytes))
		g.Expect(args.width).To(Equal(3))
		g.Expect(args.address).To(Equal(uint32(0x11223344)))
		g.Expect(args.verbose).To(BeTrue())
	})

	tt := []struct {
		name string
		args []string
	}{
		{name: "No Command", args: []string{}},
		{name: "Flags Only", args: []string{"--verbose"}},
		{name: "Missing Bytes", args: []string{"to-int"}},
		{name: "Bad Hex", args: []string{"to-int", "2g"}},
		{name: "Bad Address", args: []string{"to-bytes", "address"}},
		{name: "Address Too Large", args: []string{"to-bytes", "0x100000000"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseArgs(tc.args)
			if err == nil {
				t.Fatalf("expected an error for %v", tc.args)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	tt := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{name: "To Int", args: []string{"to-int", "201030"}, want: "0x201030\n"},
		{name: "To Int Spaced", args: []string{"to-int", "20 10 30 40", "--width", "4"}, want: "0x20103040\n"},
		{name: "To Bytes", args: []string{"to-bytes", "0x11223344"}, want: "223344\n"},
		{name: "To Bytes Wide", args: []string{"to-bytes", "--width", "4", "287454020"}, want: "11223344\n"},
		{name: "Bad Width", args: []string{"to-int", "--width", "2", "2010"}, wantErr: flash.ErrInvalidArgument},
		{name: "Short Bytes", args: []string{"to-int", "--width", "4", "201030"}, wantErr: flash.ErrInvalidArgument},
		{name: "Bad Width Encode", args: []string{"to-bytes", "--width", "5", "1"}, wantErr: flash.ErrInvalidArgument},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGomegaWithT(t)

			args, err := parseArgs(tc.args)
			g.Expect(err).NotTo(HaveOccurred())

			var out bytes.Buffer
			err = args.execute(&out, zap.NewNop())
			g.Expect(errors.Is(err, tc.wantErr)).To(BeTrue())
			g.Expect(out.String()).To(Equal(tc.want))
		})
	}
}
