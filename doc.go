// Package esp decodes Bethesda-style ESP/ESM plugin files.
//
// A plugin is a file-header record (TES4) followed by top-level groups (GRUP). Each
// group holds records of a single kind and each record holds a sequence of typed
// subrecords.
//
// # File Format Overview
//
// Every element starts with a 4-byte type code followed by a size:
//   - groups: "GRUP", u32 total size including the 24-byte header, label, type and
//     version-control words
//   - records: tag, u32 payload size, flags, form id, version-control info, version
//   - subrecords: tag, u16 payload size
//
// Type codes are read big-endian so that they compare as their ASCII text; all other
// numbers are little-endian. Decoding tracks one byte budget per nesting level and
// checks that each group and record consumes exactly the size it declares.
//
// Records flagged [FlagCompressed] hold a u32 inflated size followed by zlib data.
// Plugins flagged [PluginLocalized] store FULL and DESC strings as string-table ids,
// see [LString].
//
// # Basic Usage
//
//	f, _ := os.Open("Skyrim.esm")
//	defer f.Close()
//	p, err := esp.Decode(f)
//	if err != nil {
//		return err
//	}
//	if kw, ok := esp.GroupOf[esp.KeywordData](p, esp.RecordKeyword); ok {
//		for _, r := range kw.Records {
//			fmt.Printf("%08X %s\n", r.FormID(), r.EditorID())
//		}
//	}
//
// Top-level group kinds outside [SupportedGroups] fail the decode with
// [ErrUnknownGroup]. Unknown subrecords inside a supported record are skipped unless
// [WithUnknownSubrecords] or [WithKindPolicy] says otherwise.
//
// # Errors
//
// Malformed input yields an error wrapping [ErrFormat] (test with [IsFormatError]).
// A stream that ends inside a structure yields [io.ErrUnexpectedEOF]. Resource use is
// bounded by [Limits].
package esp
