package csvskema

// Row is the ordered, trimmed fields of one physical input line.
type Row []string

// Table is an ordered sequence of Rows in input line order. Tables returned by
// this package are never modified after they are returned.
type Table []Row

// Len returns the number of rows.
func (t Table) Len() int { return len(t) }

// ParseOpt bundles parsing options.
type ParseOpt struct {
	// CollectAll reports every failing row instead of stopping at the first
	// one. The result is still a single failure value.
	CollectAll bool
	// FailFast stops at the very first issue, even inside a row. It takes
	// precedence over CollectAll.
	FailFast bool
	// MaxBytes caps how much text ParseFrom reads from a Source (0 = no cap).
	MaxBytes int64
}

func lastOpt(opts []ParseOpt) ParseOpt {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}
