package status

import "sync/atomic"

// MaxLabelLen bounds label values
const MaxLabelLen = 32

// Label is a short string reading, such as a state name, that counts how
// often it changes
type Label struct {
	ptr     atomic.Pointer[string]
	changes atomic.Int64
}

// Store truncates v to MaxLabelLen bytes and reports whether it differs
// from the previous value
func (l *Label) Store(v string) bool {
	if len(v) > MaxLabelLen {
		v = v[:MaxLabelLen]
	}
	old := l.ptr.Swap(&v)
	if old != nil && *old == v {
		return false
	}
	l.changes.Add(1)
	return true
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// Changes counts stores that replaced a different value, the first
// store included
func (l *Label) Changes() int64 {
	return l.changes.Load()
}
