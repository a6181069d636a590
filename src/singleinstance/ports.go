package singleinstance

const (
	DefaultPortStart = 49600
	DefaultPortEnd   = 49650
)

// PortRange is an inclusive loopback port range. The resident binds Start;
// clients scan the whole range.
type PortRange struct {
	Start int
	End   int
}

// normalize falls back to defaults when unset and clamps to [1024, 65535].
func (r PortRange) normalize() PortRange {
	if r.Start == 0 && r.End == 0 {
		return PortRange{Start: DefaultPortStart, End: DefaultPortEnd}
	}
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	if r.Start < 1024 {
		r.Start = 1024
	}
	if r.End > 65535 {
		r.End = 65535
	}
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}
