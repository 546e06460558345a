package esp

// Limits bounds the sizes the decoder accepts before allocating or looping on them.
// Zero fields take the defaults.
type Limits struct {
	MaxGroupSize        uint32 // declared group size, header included
	MaxRecordSize       uint32 // declared record payload size as stored in the file
	MaxDecompressedSize uint32 // payload size after inflating a compressed record
	MaxStringLen        int    // zstring bytes, terminator excluded
}

func defaultLimits() Limits {
	return Limits{
		MaxGroupSize:        1 << 30,   // 1 GiB
		MaxRecordSize:       64 << 20,  // 64 MiB
		MaxDecompressedSize: 256 << 20, // 256 MiB
		MaxStringLen:        1 << 16,   // subrecord sizes are u16
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxGroupSize == 0 {
		l.MaxGroupSize = d.MaxGroupSize
	}
	if l.MaxRecordSize == 0 {
		l.MaxRecordSize = d.MaxRecordSize
	}
	if l.MaxDecompressedSize == 0 {
		l.MaxDecompressedSize = d.MaxDecompressedSize
	}
	if l.MaxStringLen == 0 {
		l.MaxStringLen = d.MaxStringLen
	}
	return l
}
