package diag

import "sort"

// List is the ordered diagnostic output of one lint run. Nil entries are the
// engine's "too many errors" sentinel.
type List []*Diagnostic

// Sort orders by line then character. Entries without a line, the sentinel
// included, go last; ties keep their engine order.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return less(l[i], l[j])
	})
}

func less(a, b *Diagnostic) bool {
	aLine, bLine := lineOf(a), lineOf(b)
	switch {
	case aLine == 0:
		return false
	case bLine == 0:
		return true
	case aLine != bLine:
		return aLine < bLine
	}
	return a.Character < b.Character
}

func lineOf(d *Diagnostic) int {
	if d == nil {
		return 0
	}
	return d.Line
}

// Shift moves positioned entries by a line and character offset, as needed
// when the linted text was cut out of a larger file.
func (l List) Shift(lines, chars int) {
	if lines == 0 && chars == 0 {
		return
	}
	for _, d := range l {
		if d == nil || d.Line == 0 {
			continue
		}
		d.Line += lines
		d.Character += chars
	}
}

// Aborted reports whether the engine gave up before the end of the input.
func (l List) Aborted() bool {
	for _, d := range l {
		if d == nil {
			return true
		}
	}
	return false
}

// Counts tallies entries by severity; the sentinel is not counted.
func (l List) Counts() (errors, warnings, infos int) {
	for _, d := range l {
		if d == nil {
			continue
		}
		switch d.Severity() {
		case SevError:
			errors++
		case SevInfo:
			infos++
		default:
			warnings++
		}
	}
	return errors, warnings, infos
}

// Limit returns at most n entries; n <= 0 means no limit.
func (l List) Limit(n int) List {
	if n <= 0 || n >= len(l) {
		return l
	}
	return l[:n]
}
