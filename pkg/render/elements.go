package render

import "strings"

// Inline elements stay on their parent's line in pretty output.
var inlineElements = setOf(`
	a abbr b bdi bdo br cite code data dfn em i kbd mark q rb rp rt rtc
	ruby s samp small span strong sub sup time u var wbr`)

// Boolean attributes render as a bare name when true and not at all when
// false.
var booleanAttrs = setOf(`
	allowfullscreen async autofocus autoplay checked controls default defer
	disabled formnovalidate hidden ismap itemscope loop multiple muted
	nomodule novalidate open playsinline readonly required reversed selected`)

func setOf(names string) map[string]bool {
	set := make(map[string]bool)
	for _, name := range strings.Fields(names) {
		set[name] = true
	}
	return set
}

func isInlineElement(tag string) bool { return inlineElements[tag] }

func isBooleanAttr(name string) bool { return booleanAttrs[name] }
