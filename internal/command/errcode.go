// internal/command/errcode.go
package command

import "fmt"

// ErrorCode is the device-reported failure code carried by NAck replies.
type ErrorCode uint32

const (
	CodeSuccess                  ErrorCode = 0
	CodeDataMissMatch            ErrorCode = 1001
	CodeUnknownError             ErrorCode = 1002
	CodeMemoryOverload           ErrorCode = 1003
	CodeDecodeCBORError          ErrorCode = 1004
	CodeCRCError                 ErrorCode = 1005
	CodeDataOverload             ErrorCode = 1006
	CodeStorageAccessFailure     ErrorCode = 1007
	CodeFileAccessViolation      ErrorCode = 1008
	CodeWiFiPartitionError       ErrorCode = 1009
	CodeUserPartitionError       ErrorCode = 1010
	CodeMountingFileSystemFailed ErrorCode = 1011
	CodeInvalidID                ErrorCode = 1012
	CodeInvalidCMD               ErrorCode = 1013
	CodeSendCMDFail              ErrorCode = 1014
	CodeWriteNVRamFail           ErrorCode = 1015
)

var codeNames = map[ErrorCode]string{
	CodeSuccess:                  "Success",
	CodeDataMissMatch:            "DataMissMatch",
	CodeUnknownError:             "UnknownError",
	CodeMemoryOverload:           "MemoryOverload",
	CodeDecodeCBORError:          "DecodeCBORError",
	CodeCRCError:                 "CRCError",
	CodeDataOverload:             "DataOverload",
	CodeStorageAccessFailure:     "StorageAccessFailure",
	CodeFileAccessViolation:      "FileAccessViolation",
	CodeWiFiPartitionError:       "WiFiPartitionError",
	CodeUserPartitionError:       "UserPartitionError",
	CodeMountingFileSystemFailed: "MountingFileSystemFailed",
	CodeInvalidID:                "InvalidID",
	CodeInvalidCMD:               "InvalidCMD",
	CodeSendCMDFail:              "SendCMDFail",
	CodeWriteNVRamFail:           "WriteNVRamFail",
}

// Codes outside the table collapse to UnknownError, as the firmware does.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[CodeUnknownError]
}

// ErrorCodeOf extracts a device error code from a decoded payload.
// Firmware uses either "code" or "error" as the key.
func ErrorCodeOf(payload map[string]any) (ErrorCode, bool) {
	for _, key := range []string{"code", "error"} {
		v, ok := payload[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case uint64:
			return ErrorCode(n), true
		case int64:
			if n >= 0 {
				return ErrorCode(n), true
			}
		case int:
			if n >= 0 {
				return ErrorCode(n), true
			}
		case float64:
			if n >= 0 {
				return ErrorCode(n), true
			}
		}
	}
	return 0, false
}

// Describe renders a code for operator output, e.g. "1005 CRCError".
func (c ErrorCode) Describe() string {
	return fmt.Sprintf("%d %s", uint32(c), c.String())
}
