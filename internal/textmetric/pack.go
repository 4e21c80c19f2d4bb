package textmetric

import "strings"

// Pack splits s by separator and greedily accumulates tokens into lines
// that fit maxWidth at point size pt, per spec.md §4.2a:
//
//   - tokens are joined back with separator while the joined candidate
//     still fits maxWidth;
//   - on overflow the accumulated run is emitted as one line and the
//     token that didn't fit starts the next run;
//   - a single token that by itself exceeds maxWidth is recursively
//     packed with an empty separator (char-level), and the last
//     char-level fragment is requeued as the start of the next line so
//     subsequent words may join it.
func Pack(m Measurer, s, separator string, pt, maxWidth float64) ([]string, error) {
	if s == "" {
		return nil, nil
	}

	tokens := strings.Split(s, separator)
	var lines []string
	current := ""

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		candidate := token
		if current != "" {
			candidate = current + separator + token
		}

		width, err := m.Measure(candidate, pt)
		if err != nil {
			return nil, err
		}

		switch {
		case width <= maxWidth:
			current = candidate

		case current != "":
			// Adding token overflows a non-empty run: emit the run and
			// retry this token on a fresh line.
			lines = append(lines, current)
			current = ""
			i--

		default:
			// The token alone overflows even on an empty line: break it
			// char-wise and requeue the last fragment.
			subLines, err := Pack(m, token, "", pt, maxWidth)
			if err != nil {
				return nil, err
			}
			if len(subLines) == 0 {
				continue
			}
			lines = append(lines, subLines[:len(subLines)-1]...)
			current = subLines[len(subLines)-1]
		}
	}

	if current != "" {
		lines = append(lines, current)
	}

	return lines, nil
}
