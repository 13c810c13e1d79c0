package protocol

// Limits constrains decode memory use. A zero field disables that check.
type Limits struct {
	MaxStringBytes uint32
	MaxBlobBytes   uint32
	MaxChunkBytes  uint32
	MaxListCount   uint32
}

func DefaultLimits() Limits {
	return Limits{
		MaxStringBytes: 16 * 1024 * 1024,
		MaxBlobBytes:   64 * 1024 * 1024,
		MaxChunkBytes:  64 * 1024 * 1024,
		MaxListCount:   1 << 20,
	}
}

func exceeds(n, limit uint32) bool {
	return limit != 0 && n > limit
}
