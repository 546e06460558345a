package esp

import (
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
)

// UnknownPolicy decides what a record's dispatch loop does with a subrecord tag it
// has no slot for.
type UnknownPolicy uint8

const (
	// SkipUnknown consumes the subrecord's declared bytes and discards them.
	SkipUnknown UnknownPolicy = iota
	// RejectUnknown fails the decode with ErrUnknownSubrecord.
	RejectUnknown
)

func (p UnknownPolicy) String() string {
	switch p {
	case SkipUnknown:
		return "skip"
	case RejectUnknown:
		return "reject"
	default:
		return "invalid"
	}
}

type readConfig struct {
	limits           Limits
	compression      Compression
	policy           UnknownPolicy
	kindPolicy       map[RecordType]UnknownPolicy
	strictSubrecords bool
	encoding         encoding.Encoding
	groupCount       int
	logger           zerolog.Logger
}

type ReadOption func(*readConfig)

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{
		limits:      defaultLimits(),
		compression: CompZlib,
		policy:      SkipUnknown,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

func (c *readConfig) policyFor(kind RecordType) UnknownPolicy {
	if p, ok := c.kindPolicy[kind]; ok {
		return p
	}
	return c.policy
}

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithRecordCompression selects the codec used to inflate records flagged as
// compressed. The default is CompZlib, which is what the game tools write.
func WithRecordCompression(comp Compression) ReadOption {
	return func(c *readConfig) { c.compression = comp }
}

// WithUnknownSubrecords sets the policy for every record kind without its own override.
func WithUnknownSubrecords(p UnknownPolicy) ReadOption {
	return func(c *readConfig) { c.policy = p }
}

// WithKindPolicy overrides the unknown-subrecord policy for one record kind.
func WithKindPolicy(kind RecordType, p UnknownPolicy) ReadOption {
	return func(c *readConfig) {
		if c.kindPolicy == nil {
			c.kindPolicy = make(map[RecordType]UnknownPolicy)
		}
		c.kindPolicy[kind] = p
	}
}

// WithStrictSubrecords makes every subrecord check that its payload decoder consumed
// exactly the declared length.
func WithStrictSubrecords(v bool) ReadOption {
	return func(c *readConfig) { c.strictSubrecords = v }
}

// WithStringEncoding decodes zstrings with enc (for example charmap.Windows1252)
// instead of requiring valid UTF-8.
func WithStringEncoding(enc encoding.Encoding) ReadOption {
	return func(c *readConfig) { c.encoding = enc }
}

// WithGroupCount makes Decode read exactly n top-level groups instead of reading
// until the stream ends. Bytes left over afterwards are an error.
func WithGroupCount(n int) ReadOption {
	return func(c *readConfig) { c.groupCount = n }
}

func WithLogger(l zerolog.Logger) ReadOption {
	return func(c *readConfig) { c.logger = l }
}
