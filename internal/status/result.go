// internal/status/result.go
package status

import (
	"errors"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
)

// Result is the outcome of one Modbus transaction.
// A non-success Result is used directly as an error value.
type Result uint8

var messages = map[Result]string{
	IllegalFunction:    "Illegal function",
	IllegalDataAddress: "Illegal data address",
	IllegalDataValue:   "Illegal data value",
	SlaveDeviceFailure: "Slave device failure",
	InvalidSlaveID:     "Invalid slave ID",
	InvalidFunction:    "Invalid function",
	ResponseTimedOut:   "Response timed out",
	InvalidCRC:         "Invalid CRC",
}

// Message maps a result code to its fixed description.
// Codes outside the known set are rendered as their decimal value.
func Message(r Result) string {
	if m, ok := messages[r]; ok {
		return m
	}
	return strconv.Itoa(int(r))
}

func (r Result) Error() string { return Message(r) }

// Code exposes the raw code for status reporting.
func (r Result) Code() uint16 { return uint16(r) }

// Of extracts the Result carried by err.
// nil maps to Success; errors without a Result map to TransportFailure.
func Of(err error) Result {
	if err == nil {
		return Success
	}
	var r Result
	if errors.As(err, &r) {
		return r
	}
	return TransportFailure
}

// FromError classifies an error returned by the goburrow RTU client.
// The library reports CRC and slave id mismatches as formatted strings
// only, so those two are matched on their fixed wording.
func FromError(err error) Result {
	if err == nil {
		return Success
	}

	var r Result
	if errors.As(err, &r) {
		return r
	}

	var me *modbus.ModbusError
	if errors.As(err, &me) {
		// Exception replies set the high bit of the function code.
		// Anything else echoed a different function.
		if me.FunctionCode&0x80 == 0 {
			return InvalidFunction
		}
		return Result(me.ExceptionCode)
	}

	if errors.Is(err, serial.ErrTimeout) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return ResponseTimedOut
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ResponseTimedOut
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "crc"):
		return InvalidCRC
	case strings.Contains(msg, "slave id"):
		return InvalidSlaveID
	}

	return TransportFailure
}
