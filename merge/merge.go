// Package merge implements the linear-time, in-place merge kernels that
// the bitonic-merging network in sortengine uses to combine two
// equal-length, individually monotone segments into one run of twice the
// length. Eight directional variants cover every combination of input
// monotonicity and output direction with a single linear scan each.
package merge

// scatter copies buf (length 2*len(seg1)) back into seg1 and seg2.
func scatter(buf, seg1, seg2 []int) {
	size := len(seg1)
	copy(seg1, buf[:size])
	copy(seg2, buf[size:2*size])
}

// mergeUpFromUpUp merges seg1 (ascending) and seg2 (ascending) into buf in
// ascending order, then scatters buf back into seg1/seg2.
func mergeUpFromUpUp(seg1, seg2, buf []int) {
	size := len(seg1)
	i, j, k := 0, 0, 0
	for i < size && j < size {
		if seg1[i] < seg2[j] {
			buf[k] = seg1[i]
			i++
		} else {
			buf[k] = seg2[j]
			j++
		}
		k++
	}
	for i < size {
		buf[k] = seg1[i]
		i++
		k++
	}
	for j < size {
		buf[k] = seg2[j]
		j++
		k++
	}
	scatter(buf, seg1, seg2)
}

// mergeUpFromUpDn merges seg1 (ascending) and seg2 (descending) into buf in
// ascending order.
func mergeUpFromUpDn(seg1, seg2, buf []int) {
	size := len(seg1)
	i, j, k := 0, size-1, 0
	for i < size && j >= 0 {
		if seg1[i] < seg2[j] {
			buf[k] = seg1[i]
			i++
		} else {
			buf[k] = seg2[j]
			j--
		}
		k++
	}
	for i < size {
		buf[k] = seg1[i]
		i++
		k++
	}
	for j >= 0 {
		buf[k] = seg2[j]
		j--
		k++
	}
	scatter(buf, seg1, seg2)
}

// mergeUpFromDnUp merges seg1 (descending) and seg2 (ascending) into buf in
// ascending order.
func mergeUpFromDnUp(seg1, seg2, buf []int) {
	size := len(seg1)
	i, j, k := size-1, 0, 0
	for i >= 0 && j < size {
		if seg1[i] < seg2[j] {
			buf[k] = seg1[i]
			i--
		} else {
			buf[k] = seg2[j]
			j++
		}
		k++
	}
	for i >= 0 {
		buf[k] = seg1[i]
		i--
		k++
	}
	for j < size {
		buf[k] = seg2[j]
		j++
		k++
	}
	scatter(buf, seg1, seg2)
}

// mergeUpFromDnDn merges seg1 (descending) and seg2 (descending) into buf
// in ascending order.
func mergeUpFromDnDn(seg1, seg2, buf []int) {
	size := len(seg1)
	i, j, k := size-1, size-1, 0
	for i >= 0 && j >= 0 {
		if seg1[i] < seg2[j] {
			buf[k] = seg1[i]
			i--
		} else {
			buf[k] = seg2[j]
			j--
		}
		k++
	}
	for i >= 0 {
		buf[k] = seg1[i]
		i--
		k++
	}
	for j >= 0 {
		buf[k] = seg2[j]
		j--
		k++
	}
	scatter(buf, seg1, seg2)
}

// mergeDnFromUpUp merges seg1 (ascending) and seg2 (ascending) into buf in
// descending order.
func mergeDnFromUpUp(seg1, seg2, buf []int) {
	size := len(seg1)
	i, j, k := size-1, size-1, 0
	for i >= 0 && j >= 0 {
		if seg1[i] > seg2[j] {
			buf[k] = seg1[i]
			i--
		} else {
			buf[k] = seg2[j]
			j--
		}
		k++
	}
	for i >= 0 {
		buf[k] = seg1[i]
		i--
		k++
	}
	for j >= 0 {
		buf[k] = seg2[j]
		j--
		k++
	}
	scatter(buf, seg1, seg2)
}

// mergeDnFromUpDn merges seg1 (ascending) and seg2 (descending) into buf in
// descending order.
func mergeDnFromUpDn(seg1, seg2, buf []int) {
	size := len(seg1)
	i, j, k := size-1, 0, 0
	for i >= 0 && j < size {
		if seg1[i] > seg2[j] {
			buf[k] = seg1[i]
			i--
		} else {
			buf[k] = seg2[j]
			j++
		}
		k++
	}
	for i >= 0 {
		buf[k] = seg1[i]
		i--
		k++
	}
	for j < size {
		buf[k] = seg2[j]
		j++
		k++
	}
	scatter(buf, seg1, seg2)
}

// mergeDnFromDnUp merges seg1 (descending) and seg2 (ascending) into buf in
// descending order.
func mergeDnFromDnUp(seg1, seg2, buf []int) {
	size := len(seg1)
	i, j, k := 0, size-1, 0
	for i < size && j >= 0 {
		if seg1[i] > seg2[j] {
			buf[k] = seg1[i]
			i++
		} else {
			buf[k] = seg2[j]
			j--
		}
		k++
	}
	for i < size {
		buf[k] = seg1[i]
		i++
		k++
	}
	for j >= 0 {
		buf[k] = seg2[j]
		j--
		k++
	}
	scatter(buf, seg1, seg2)
}

// mergeDnFromDnDn merges seg1 (descending) and seg2 (descending) into buf
// in descending order.
func mergeDnFromDnDn(seg1, seg2, buf []int) {
	size := len(seg1)
	i, j, k := 0, 0, 0
	for i < size && j < size {
		if seg1[i] > seg2[j] {
			buf[k] = seg1[i]
			i++
		} else {
			buf[k] = seg2[j]
			j++
		}
		k++
	}
	for i < size {
		buf[k] = seg1[i]
		i++
		k++
	}
	for j < size {
		buf[k] = seg2[j]
		j++
		k++
	}
	scatter(buf, seg1, seg2)
}

// ascending reports whether seg is non-decreasing (true) or
// non-increasing (false), decided by comparing its first and last
// element.
func ascending(seg []int) bool {
	return seg[0] < seg[len(seg)-1]
}

// Up merges seg1 and seg2 — each internally monotone in either direction,
// of equal length — into non-decreasing order in place, using buf (length
// 2*len(seg1)) as linear scratch space. Every kernel compares strictly, so
// of two equal elements the one from seg2 is written first; ties do not
// favor seg1.
func Up(seg1, seg2, buf []int) {
	switch {
	case ascending(seg1) && ascending(seg2):
		mergeUpFromUpUp(seg1, seg2, buf)
	case ascending(seg1) && !ascending(seg2):
		mergeUpFromUpDn(seg1, seg2, buf)
	case !ascending(seg1) && ascending(seg2):
		mergeUpFromDnUp(seg1, seg2, buf)
	default:
		mergeUpFromDnDn(seg1, seg2, buf)
	}
}

// Dn merges seg1 and seg2 into non-increasing order in place. See Up.
func Dn(seg1, seg2, buf []int) {
	switch {
	case ascending(seg1) && ascending(seg2):
		mergeDnFromUpUp(seg1, seg2, buf)
	case ascending(seg1) && !ascending(seg2):
		mergeDnFromUpDn(seg1, seg2, buf)
	case !ascending(seg1) && ascending(seg2):
		mergeDnFromDnUp(seg1, seg2, buf)
	default:
		mergeDnFromDnDn(seg1, seg2, buf)
	}
}
