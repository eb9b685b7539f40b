package blueroute

// Segments splits a request target into its path segments. One leading
// slash is dropped, empty segments are skipped and scanning stops at the
// first '?' or '#'.
func Segments(target string) []string {
	if len(target) > 0 && target[0] == '/' {
		target = target[1:]
	}

	segments := []string{}
	start := 0
	for i := 0; i < len(target); i++ {
		switch target[i] {
		case '/':
			if i > start {
				segments = append(segments, target[start:i])
			}
			start = i + 1
		case '?', '#':
			if i > start {
				segments = append(segments, target[start:i])
			}
			return segments
		}
	}

	if len(target) > start {
		segments = append(segments, target[start:])
	}
	return segments
}

// requestURI is the target as route prefixes are matched against it.
func requestURI(target string) string {
	if len(target) > 0 && target[0] == '/' {
		return target[1:]
	}
	return target
}
