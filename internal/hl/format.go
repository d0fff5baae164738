package hl

// forEachFormatSpecifier scans a format string body for specifier runs and
// calls fn for every balanced brace group, including the braces. Doubled
// braces are literal text and produce nothing; an unclosed brace aborts the
// scan since everything after it is unparseable as a specifier.
func forEachFormatSpecifier(body string, fn func(off, length uint32)) {
	i := 0
	for i < len(body) {
		switch body[i] {
		case '{':
			if i+1 < len(body) && body[i+1] == '{' {
				i += 2
				continue
			}
			end := specifierEnd(body, i+1)
			if end < 0 {
				return
			}
			fn(uint32(i), uint32(end+1-i)) //nolint:gosec // body length fits uint32
			i = end + 1
		case '}':
			if i+1 < len(body) && body[i+1] == '}' {
				i += 2
				continue
			}
			i++
		default:
			i++
		}
	}
}

// specifierEnd finds the closing brace of a specifier starting right after
// its opening brace, or -1. Specifiers never span lines or nest.
func specifierEnd(body string, from int) int {
	for i := from; i < len(body); i++ {
		switch body[i] {
		case '}':
			return i
		case '{', '\n':
			return -1
		}
	}
	return -1
}
