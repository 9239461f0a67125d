package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ierr "github.com/skyup-digital/skyup-api/internal/errors"
)

const (
	// DefaultPrefix is the issuer code at the start of every invoice number.
	DefaultPrefix = "SDS"

	numberSeparator = "/"
	numberSegments  = 3
)

// InvoiceNumber is the parsed form of PREFIX/SERIAL/FINANCIAL-YEAR.
type InvoiceNumber struct {
	Prefix        string
	Serial        int
	FinancialYear string
}

// ParseInvoiceNumber splits a stored invoice number. The serial must be a
// non-negative base 10 integer; anything else is a corrupt sequence.
func ParseInvoiceNumber(number string) (*InvoiceNumber, error) {
	parts := strings.Split(number, numberSeparator)
	if len(parts) != numberSegments {
		return nil, corruptNumber(number, "expected %d segments, got %d", numberSegments, len(parts))
	}

	raw := parts[1]
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return nil, corruptNumber(number, "serial %q is not a non-negative integer", raw)
	}

	serial, err := strconv.Atoi(raw)
	if err != nil {
		return nil, corruptNumber(number, "serial %q out of range", raw)
	}

	return &InvoiceNumber{
		Prefix:        parts[0],
		Serial:        serial,
		FinancialYear: parts[2],
	}, nil
}

func corruptNumber(number, format string, args ...any) error {
	return ierr.NewErrorf("malformed invoice number %q: "+format, append([]any{number}, args...)...).
		WithHint("The stored invoice sequence is corrupt").
		WithReportableDetails(map[string]any{
			"invoice_number": number,
		}).
		Mark(ierr.ErrCorruptSequence)
}

// FinancialYear returns the Indian financial year label (April to March) for t
// in t's own location, e.g. 2024-03-15 -> "2023-24", 2024-04-01 -> "2024-25".
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// Sequencer derives invoice numbers from the previous receipt.
type Sequencer struct {
	Prefix   string
	Location *time.Location
	// ResetEachFinancialYear restarts serials at 1 when the financial year
	// changes. When false serials form one running counter.
	ResetEachFinancialYear bool
}

// NewSequencer returns a sequencer with empty settings replaced by defaults.
func NewSequencer(prefix string, loc *time.Location, resetEachFinancialYear bool) *Sequencer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Sequencer{
		Prefix:                 prefix,
		Location:               loc,
		ResetEachFinancialYear: resetEachFinancialYear,
	}
}

// FinancialYear returns the label for now in the business time zone.
func (s *Sequencer) FinancialYear(now time.Time) string {
	return FinancialYear(now.In(s.location()))
}

// SequenceName is the counter scope for receipts issued at now.
func (s *Sequencer) SequenceName(now time.Time) string {
	if s.ResetEachFinancialYear {
		return s.FinancialYear(now)
	}
	return GlobalSequence
}

// LastSerial returns the serial of last within the sequence active at now,
// or 0 when that sequence has issued nothing yet.
func (s *Sequencer) LastSerial(last *Receipt, now time.Time) (int, error) {
	if last == nil {
		return 0, nil
	}
	n, err := ParseInvoiceNumber(last.InvoiceNumber)
	if err != nil {
		return 0, err
	}
	if s.ResetEachFinancialYear && n.FinancialYear != s.FinancialYear(now) {
		return 0, nil
	}
	return n.Serial, nil
}

// NextSerial returns the serial following last for a receipt issued at now.
func (s *Sequencer) NextSerial(last *Receipt, now time.Time) (int, error) {
	serial, err := s.LastSerial(last, now)
	if err != nil {
		return 0, err
	}
	return serial + 1, nil
}

// Next returns the invoice number that follows last.
func (s *Sequencer) Next(last *Receipt, now time.Time) (string, error) {
	serial, err := s.NextSerial(last, now)
	if err != nil {
		return "", err
	}
	return s.Format(serial, s.FinancialYear(now)), nil
}

// Format renders PREFIX/SSS/YYYY-YY. Serials of 1000 and above keep all digits.
func (s *Sequencer) Format(serial int, financialYear string) string {
	return fmt.Sprintf("%s/%03d/%s", s.Prefix, serial, financialYear)
}

func (s *Sequencer) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
