package repositories

import "encoding/json"

// jsonString marshals v for text columns written through map updates
func jsonString(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
