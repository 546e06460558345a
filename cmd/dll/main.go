// Package main provides C-compatible exports for the esp library.
// Build with: go build -buildmode=c-shared -o esp.dll
package main

/*
#include <stdlib.h>
#include <stdint.h>

// Result structure for operations that return data
typedef struct {
    char* data;
    int   data_len;
    char* error;
} EspResult;
*/
import "C"

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unsafe"

	"github.com/logicossoftware/go-esp"
)

func main() {}

// EspVersion returns the newest plugin header version this library decodes.
//
//export EspVersion
func EspVersion() C.float {
	return C.float(esp.LatestHeaderVersion)
}

// EspFreeResult frees memory allocated by other Esp functions.
// Must be called to avoid memory leaks.
//
//export EspFreeResult
func EspFreeResult(result C.EspResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// EspFreeString frees a C string allocated by Go.
//
//export EspFreeString
func EspFreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func makeResult(data []byte) C.EspResult {
	var result C.EspResult
	if len(data) > 0 {
		result.data = (*C.char)(C.CBytes(data))
		result.data_len = C.int(len(data))
	}
	return result
}

func makeError(err error) C.EspResult {
	var result C.EspResult
	result.error = C.CString(err.Error())
	return result
}

func decode(data *C.char, dataLen C.int, opts ...esp.ReadOption) (*esp.Plugin, error) {
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	return esp.Decode(bytes.NewReader(goData), opts...)
}

// EspDecode decodes a plugin and returns a JSON summary.
// Parameters:
//   - data: pointer to plugin file bytes
//   - dataLen: length of the data
//
// The JSON object holds the header fields and one entry per group listing
// form ids and editor ids. Call EspFreeResult when done.
//
//export EspDecode
func EspDecode(data *C.char, dataLen C.int) C.EspResult {
	p, err := decode(data, dataLen)
	if err != nil {
		return makeError(err)
	}

	h := p.Header.Data
	groups := make([]map[string]any, 0, len(p.Groups))
	for _, kind := range p.Kinds() {
		g, _ := p.Group(kind)
		records := make([]map[string]any, 0, g.Len())
		for _, f := range g.Forms() {
			records = append(records, map[string]any{
				"formId":   f.FormID(),
				"editorId": f.EditorID(),
				"flags":    uint32(f.Flags()),
			})
		}
		groups = append(groups, map[string]any{
			"kind":    kind.String(),
			"name":    kind.Name(),
			"records": records,
		})
	}
	result := map[string]any{
		"header": map[string]any{
			"flags":       uint32(p.Header.Header.Flags),
			"author":      h.Author(),
			"description": h.Description(),
			"master":      h.Master(),
			"overrides":   h.Overrides(),
		},
		"groups": groups,
	}
	if h.HEDR != nil {
		result["header"].(map[string]any)["version"] = h.HEDR.Data.Version
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return makeError(err)
	}
	return makeResult(jsonBytes)
}

// EspDecodeRecord returns one record, looked up by form id, as JSON.
// Call EspFreeResult when done.
//
//export EspDecodeRecord
func EspDecodeRecord(data *C.char, dataLen C.int, formID C.uint32_t) C.EspResult {
	p, err := decode(data, dataLen)
	if err != nil {
		return makeError(err)
	}
	f, ok := p.Record(uint32(formID))
	if !ok {
		return makeError(fmt.Errorf("record not found: %08X", uint32(formID)))
	}
	jsonBytes, err := json.Marshal(f)
	if err != nil {
		return makeError(err)
	}
	return makeResult(jsonBytes)
}

// EspValidate decodes a plugin strictly: unknown subrecords are rejected and
// subrecord lengths must match exactly.
// Returns NULL on success, or an error message string on failure.
// Call EspFreeString on the result if non-NULL.
//
//export EspValidate
func EspValidate(data *C.char, dataLen C.int) *C.char {
	_, err := decode(data, dataLen,
		esp.WithUnknownSubrecords(esp.RejectUnknown),
		esp.WithStrictSubrecords(true),
	)
	if err != nil {
		return C.CString(err.Error())
	}
	return nil
}

// EspGetGroupCount returns the number of top-level groups in a plugin.
// Returns -1 on error.
//
//export EspGetGroupCount
func EspGetGroupCount(data *C.char, dataLen C.int) C.int {
	p, err := decode(data, dataLen)
	if err != nil {
		return -1
	}
	return C.int(len(p.Groups))
}

// EspGetRecordCount returns the number of records across all groups, excluding
// the file header. Returns -1 on error.
//
//export EspGetRecordCount
func EspGetRecordCount(data *C.char, dataLen C.int) C.int {
	p, err := decode(data, dataLen)
	if err != nil {
		return -1
	}
	return C.int(p.Len())
}
