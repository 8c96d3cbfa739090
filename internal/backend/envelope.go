package backend

import "github.com/tidwall/gjson"

// The backend wraps responses in a {data: ...} envelope, but not
// consistently: some endpoints return the payload bare, some nest the list
// one level deeper (data.ratings style), and some omit it entirely. The
// accepted shapes are enumerated here once so no call site unwraps ad hoc.

// extractList returns the raw JSON of the first list found in body, probing
// in order: bare root array, `data` array, then `data.<key>` for each of the
// given nested keys. A missing or unexpected shape yields "", which callers
// treat as an empty list rather than a failure.
func extractList(body []byte, nestedKeys ...string) string {
	root := gjson.ParseBytes(body)
	if root.IsArray() {
		return root.Raw
	}
	data := root.Get("data")
	if data.IsArray() {
		return data.Raw
	}
	if data.IsObject() {
		for _, key := range nestedKeys {
			if nested := data.Get(key); nested.IsArray() {
				return nested.Raw
			}
		}
	}
	return ""
}

// extractObject returns the raw JSON of the payload object: `data` when it is
// an object, the bare root object otherwise, "" when neither shape matches.
func extractObject(body []byte) string {
	root := gjson.ParseBytes(body)
	if data := root.Get("data"); data.IsObject() {
		return data.Raw
	}
	if root.IsObject() {
		return root.Raw
	}
	return ""
}
