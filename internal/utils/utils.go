package utils

import "unicode"

func SplitNameByWords(src string) []string {
	var runes [][]rune
	var lastClass, class int

	// indexes of segments that start right after a separator
	boundaries := map[int]bool{}

	// split into fields based on class of unicode character
	for _, r := range src {
		switch {
		case unicode.IsLower(r):
			class = 1
		case unicode.IsUpper(r):
			class = 2
		case unicode.IsDigit(r):
			class = 3
		case r == '.' || r == '_' || r == '-':
			// When we encounter a separator, force a new word segment to start
			// but don't include the separator itself
			lastClass = -1 // Use a special value to force a break
			continue
		default:
			class = 4
		}

		// Don't split when going from uppercase to digit (S3 case)
		// lastClass == -1 is our special marker for a separator, which forces a break
		if (class == lastClass || (lastClass == 2 && class == 3)) && lastClass != -1 {
			sz := len(runes) - 1
			runes[sz] = append(runes[sz], r)
		} else {
			if lastClass == -1 {
				boundaries[len(runes)] = true
			}
			runes = append(runes, []rune{r})
		}
		lastClass = class
	}

	// handle upper case -> lower case sequences, e.g.
	// "PDFL", "oader" -> "PDF", "Loader"
	for i := 0; i < len(runes)-1; i++ {
		if boundaries[i+1] || len(runes[i]) == 0 {
			continue
		}
		if unicode.IsUpper(runes[i][0]) && unicode.IsLower(runes[i+1][0]) {
			runes[i+1] = append([]rune{runes[i][len(runes[i])-1]}, runes[i+1]...)
			runes[i] = runes[i][:len(runes[i])-1]
		}
	}

	words := make([]string, 0, len(runes))
	for _, s := range runes {
		if len(s) > 0 {
			words = append(words, string(s))
		}
	}

	return words
}
