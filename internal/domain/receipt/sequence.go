package receipt

import "time"

// GlobalSequence names the single running counter used when serials do not
// reset at the start of a financial year.
const GlobalSequence = "global"

// InvoiceSequence is the persisted counter behind invoice serials.
type InvoiceSequence struct {
	Name      string    `db:"name"`
	LastValue int64     `db:"last_value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
