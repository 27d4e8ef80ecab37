package fixes

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// tagAttributes reads the attributes of the first tag in s. Keys are
// lower-cased and values unescaped by the tokenizer; the first occurrence of a
// repeated attribute wins, as in browsers.
func tagAttributes(s string) map[string]string {
	attrs := make(map[string]string)

	z := html.NewTokenizer(strings.NewReader(s))
	switch z.Next() {
	case html.StartTagToken, html.SelfClosingTagToken:
	default:
		return attrs
	}

	_, more := z.TagName()
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		if _, seen := attrs[string(key)]; !seen {
			attrs[string(key)] = string(val)
		}
	}
	return attrs
}

// insertAttribute inserts attr right after the tag name of an opening tag
// whose name ends at offset at.
func insertAttribute(tag string, at int, attr string) string {
	return tag[:at] + " " + attr + tag[at:]
}

// fileStem returns the part of a URL path after the last "/" and before the
// first ".", e.g. "icons/save.png" -> "save".
func fileStem(src string) string {
	name := src[strings.LastIndex(src, "/")+1:]
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}

// replaceFirst replaces the first match of re in s.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
