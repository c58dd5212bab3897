package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gstinvoice/internal/gst"
)

// LineItems is a JSONB column holding invoice line inputs.
type LineItems []gst.LineItem

// Value implements driver.Valuer.
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *LineItems) Scan(src any) error {
	return scanJSON(src, l)
}

// PartySnapshot is a JSONB column holding a seller or buyer as printed on
// the invoice.
type PartySnapshot gst.Party

// Value implements driver.Valuer.
func (p PartySnapshot) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner.
func (p *PartySnapshot) Scan(src any) error {
	return scanJSON(src, p)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", src)
	}
}
