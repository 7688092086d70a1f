// internal/status/constants.go
package status

// Probe Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerBlock is the fixed number of holding registers per status block.
const SlotsPerBlock = 24

// MaxBaseSlot is the highest block index whose registers fit below 0x10000.
const MaxBaseSlot = 65536/SlotsPerBlock - 1

// ---- SLOT INDICES ----

// SlotHealthCode holds the outcome of the last probe.
const SlotHealthCode = 0

// SlotLastResultCode holds the raw code of the last failed connect.
const SlotLastResultCode = 1

// SlotConsecutiveFailures counts connect failures since the last success.
const SlotConsecutiveFailures = 2

// SlotFamily holds the device family of the last probe.
const SlotFamily = 3

// ---- RESERVED RANGE ----

// Slots 4..11 are reserved for future use.
const SlotReservedStart = 4
const SlotReservedEnd = 11

// ---- DEVICE ID ----

// SlotDeviceIDStart is the first slot used for the device id.
// Device id is always placed at the END of the status block.
const SlotDeviceIDStart = 12

// SlotDeviceIDSlots is the number of slots reserved for the device id.
const SlotDeviceIDSlots = 12

// SlotDeviceIDEnd is the last slot used for the device id (inclusive).
const SlotDeviceIDEnd = SlotDeviceIDStart + SlotDeviceIDSlots - 1

// ---- LIMITS ----

// DeviceIDMaxChars is the maximum number of ASCII characters stored for the device id.
const DeviceIDMaxChars = 2 * SlotDeviceIDSlots

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state, before any probe.
const HealthUnknown uint16 = 0

// HealthConnected represents a successful probe.
const HealthConnected uint16 = 1

// HealthConnectionFailed represents a probe that could not connect.
const HealthConnectionFailed uint16 = 2

// HealthValidationFailed represents a submission rejected before probing.
const HealthValidationFailed uint16 = 3

// ---- FAMILY CODES ----

const FamilyNone uint16 = 0
const FamilyLogo uint16 = 1
const FamilyS7 uint16 = 2
