// Package xmlutil contains small helpers for inspecting encoding/xml
// tokens by local name.
package xmlutil
