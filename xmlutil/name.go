package xmlutil

import "encoding/xml"

// IsElement reports whether the start or end element token t has the
// local name local. Namespaces are ignored; neither source database
// declares one.
func IsElement(t xml.Token, local string) bool {
	switch t := t.(type) {
	case xml.StartElement:
		return t.Name.Local == local
	case xml.EndElement:
		return t.Name.Local == local
	}
	return false
}
