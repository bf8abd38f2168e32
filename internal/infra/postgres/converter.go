package postgres

import "encoding/json"

// JSONBFromStringSlice converts []string to []byte (JSONB)
// 順序を保ったJSON配列としてシリアライズする
func JSONBFromStringSlice(s []string) []byte {
	if s == nil {
		s = []string{}
	}
	b, _ := json.Marshal(s)
	return b
}

// StringSliceFromJSONB converts []byte (JSONB) to []string
func StringSliceFromJSONB(b []byte) []string {
	if b == nil {
		return nil
	}
	var s []string
	_ = json.Unmarshal(b, &s)
	return s
}
