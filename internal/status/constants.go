// internal/status/constants.go
package status

// Result codes returned by the transport for every transaction.
// Values follow the ModbusMaster convention used by Growatt gateways and
// MUST NOT be renumbered: they are published verbatim as last_error.

// ---- SUCCESS ----

// Success means the transaction completed and the response was valid.
const Success Result = 0x00

// ---- PROTOCOL EXCEPTIONS (device reply with function|0x80) ----

// IllegalFunction: the device does not support the function code.
const IllegalFunction Result = 0x01

// IllegalDataAddress: the register range is not valid for the device.
const IllegalDataAddress Result = 0x02

// IllegalDataValue: the written value is not acceptable.
const IllegalDataValue Result = 0x03

// SlaveDeviceFailure: unrecoverable error inside the device.
const SlaveDeviceFailure Result = 0x04

// ---- MASTER-SIDE VALIDATION ----

// InvalidSlaveID: response carried a different slave id.
const InvalidSlaveID Result = 0xE0

// InvalidFunction: response carried a different function code.
const InvalidFunction Result = 0xE1

// ResponseTimedOut: no complete response within the transport timeout.
const ResponseTimedOut Result = 0xE2

// InvalidCRC: response frame failed the CRC check.
const InvalidCRC Result = 0xE3

// TransportFailure covers I/O errors that fit none of the classes above
// (port closed, device unplugged). It is intentionally outside the named set.
const TransportFailure Result = 0xFF

// ---- HEALTH CODES ----

// HealthUnknown represents boot state before the first poll.
const HealthUnknown uint16 = 0

// HealthOK represents a device answering polls.
const HealthOK uint16 = 1

// HealthError represents a device failing polls.
const HealthError uint16 = 2

// SecondsInErrorMax caps the error duration counter.
const SecondsInErrorMax uint16 = 65535
