package xmlutil

import "encoding/xml"

// Attr returns the value of the first attribute of se whose local name
// is local, and whether it was present at all.
func Attr(se xml.StartElement, local string) (string, bool) {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// Attrs returns the values of the named attributes of se, in the order
// requested. Missing attributes are returned as nil.
func Attrs(se xml.StartElement, locals ...string) []*string {
	out := make([]*string, len(locals))
	for i, local := range locals {
		if v, ok := Attr(se, local); ok {
			out[i] = &v
		}
	}
	return out
}
