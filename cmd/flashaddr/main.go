package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/neerajladkani/Project-Cerberus/flash"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	cmdToInt   = "to-int"
	cmdToBytes = "to-bytes"
)

type arguments struct {
	command string
	width   int
	data    []byte
	address uint32
	verbose bool
}

func (a *arguments) execute(output io.Writer, logger *zap.Logger) error {
	log := logger.With(zap.String("command", a.command), zap.Int("width", a.width))

	switch a.command {
	case cmdToInt:
		address, err := flash.AddressToInt(a.data, a.width)
		if err != nil {
			return errors.WithMessage(err, "could not decode address")
		}

		log.Debug("decoded address", zap.Binary("bytes", a.data), zap.Uint32("address", address))
		fmt.Fprintf(output, "0x%x\n", address)

	case cmdToBytes:
		buf := make([]byte, 4)
		if err := flash.IntToAddress(a.address, a.width, buf); err != nil {
			return errors.WithMessage(err, "could not encode address")
		}

		log.Debug("encoded address", zap.Uint32("address", a.address), zap.Binary("bytes", buf[:a.width]))
		fmt.Fprintln(output, hex.EncodeToString(buf[:a.width]))

	default:
		return errors.Errorf("unknown command %q", a.command)
	}

	return nil
}

// parseHex decodes address bytes given as hex, with an optional 0x prefix and optional spaces
// between bytes.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.ReplaceAll(s, " ", "")
	return hex.DecodeString(s)
}

// hasCommand reports whether args name a command or ask for help. Without either kingpin prints
// usage and exits.
func hasCommand(args []string) bool {
	for _, arg := range args {
		if arg == "--help" || !strings.HasPrefix(arg, "-") {
			return true
		}
	}
	return false
}

func parseArgs(args []string) (*arguments, error) {
	if !hasCommand(args) {
		return nil, errors.New("a command is required")
	}

	app := kingpin.New("flashaddr", "Convert SPI flash addresses between command bytes and integers.")
	verbose := app.Flag("verbose", "Log each conversion to stderr.").Short('v').Bool()

	toInt := app.Command(cmdToInt, "Decode big-endian address bytes to an integer.")
	toIntWidth := toInt.Flag("width", "Address width in bytes (3 or 4).").Default("3").Int()
	toIntData := toInt.Arg("bytes", "Address bytes in hex, e.g. 201030.").Required().String()

	toBytes := app.Command(cmdToBytes, "Encode an integer as big-endian address bytes.")
	toBytesWidth := toBytes.Flag("width", "Address width in bytes (3 or 4).").Default("3").Int()
	toBytesAddress := toBytes.Arg("address", "Address as a decimal, 0x hex, or 0 octal integer.").Required().String()

	command, err := app.Parse(args)
	if err != nil {
		return nil, err
	}

	a := &arguments{command: command, verbose: *verbose}

	switch command {
	case cmdToInt:
		a.width = *toIntWidth
		a.data, err = parseHex(*toIntData)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid address bytes %q", *toIntData)
		}

	case cmdToBytes:
		a.width = *toBytesWidth
		address, err := strconv.ParseUint(*toBytesAddress, 0, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid address %q", *toBytesAddress)
		}
		a.address = uint32(address)
	}

	return a, nil
}

func main() {
	kingpin.Version("0.0.1")
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("failed to parse arguments, %s, try --help", err)
	}

	logger := zap.NewNop()
	if args.verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			kingpin.Fatalf("failed to create logger, %s", err)
		}
	}
	defer logger.Sync() //nolint:errcheck

	if err := args.execute(os.Stdout, logger); err != nil {
		kingpin.Fatalf("%s", err)
	}
}
