package cliutil

import (
	"strings"
)

// Wrap wraps the string s to a maximum width w.  Pass w == 0 to do no
// wrapping.
//
// Most lines are actually wrapped to w - 5, to leave slop so that a short
// word doesn't end up on a line by itself.
func Wrap(w int, s string) string {
	return wrapText(0, w, s)
}

// WrapIndent wraps the string s to a maximum width w, indenting
// continuation lines by i spaces.  The first line is not indented; that is
// assumed to be done by the caller.  Pass w == 0 to do no wrapping.
func WrapIndent(i, w int, s string) string {
	return wrapText(i, w, s)
}

func wrapText(indent, width int, s string) string {
	if width <= 0 {
		return s
	}
	limit := width - 5
	if limit <= indent {
		return s
	}

	var out strings.Builder
	prefix := strings.Repeat(" ", indent)
	emitted := false
	emit := func(line string) {
		if emitted {
			out.WriteByte('\n')
			out.WriteString(prefix)
		}
		out.WriteString(line)
		emitted = true
	}

	for _, srcLine := range strings.Split(s, "\n") {
		words := strings.Fields(srcLine)
		if len(words) == 0 {
			emit("")
			continue
		}
		cur := words[0]
		curWidth := indent + len(words[0])
		for _, word := range words[1:] {
			if curWidth+1+len(word) > limit {
				emit(cur)
				cur = word
				curWidth = indent + len(word)
				continue
			}
			cur += " " + word
			curWidth += 1 + len(word)
		}
		emit(cur)
	}
	return out.String()
}
