package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an int64 identifier that accepts both JSON strings and numbers. Snowflake
// ids overflow JavaScript numbers, so the dashboard sends them as strings.
type ID int64

func (i *ID) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if raw == "" || raw == "null" {
		return fmt.Errorf("id must not be empty")
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("id %q is not numeric", raw)
	}
	*i = ID(n)
	return nil
}

func (i ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(i), 10))
}

// Int64Ptr converts an optional ID.
func (i *ID) Int64Ptr() *int64 {
	if i == nil {
		return nil
	}
	v := int64(*i)
	return &v
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func Error(msg string) ErrorResponse {
	return ErrorResponse{OK: false, Error: msg}
}
