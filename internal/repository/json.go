package repository

import (
	"database/sql"
	"encoding/json"
)

// marshalJSON serialises v for storage in a JSON column.  Nil slices are
// stored as empty arrays so scans never see JSON null.
func marshalJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return []byte("[]"), nil
	}
	return b, nil
}

// unmarshalJSON decodes a nullable JSON column into dst.  NULL and empty
// strings leave dst untouched.
func unmarshalJSON(raw sql.NullString, dst any) error {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw.String), dst)
}
