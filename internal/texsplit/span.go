package texsplit

// scopeEnd returns the index of the first record after i whose rank is the
// same as or more significant than records[i], or len(records) when the
// section at i runs to the end of the list. Records strictly between i and
// the returned index are nested inside the section at i.
func scopeEnd(records []Record, i int) int {
	rank := records[i].Level.Rank()
	for j := i + 1; j < len(records); j++ {
		if records[j].Level.Rank() <= rank {
			return j
		}
	}
	return len(records)
}

// nested returns the indices of the records nested inside the section at i.
func nested(records []Record, i int) []int {
	end := scopeEnd(records, i)
	var out []int
	for k := i + 1; k < end; k++ {
		out = append(out, k)
	}
	return out
}

// endLine returns the exclusive 0-based end of the section at index within a
// file of total lines. The boundary is the next same-or-higher record only
// when it sits in the same file; otherwise the section runs to end of file.
func endLine(records []Record, index, total int) int {
	j := scopeEnd(records, index)
	if j >= len(records) {
		return total
	}
	next := records[j]
	if next.File != records[index].File || next.Line <= 0 {
		return total
	}
	return min(next.Line-1, total)
}
