package period

import (
	"github.com/hsiuhsiu/shor-go/pkg/shor"
	"github.com/hsiuhsiu/shor-go/pkg/shor/internal/modarith"
)

// PowerRow is one line of a power table.
type PowerRow struct {
	Exponent int64
	Value    int64
}

// MaxTableRows caps Table.
const MaxTableRows = 1 << 20

// Table lists a^x mod n for x = 1..upto. The repeating pattern makes the
// period visible by eye.
func Table(n, a, upto int64) ([]PowerRow, error) {
	const op = "period.Table"
	if err := shor.CheckModulus(op, n); err != nil {
		return nil, err
	}
	if upto < 1 || upto > MaxTableRows {
		return nil, shor.Errorf(op, shor.ErrInvalidParameter, "upto=%d", upto)
	}
	rows := make([]PowerRow, 0, upto)
	base := modarith.Mod(a, n)
	x := int64(1)
	for e := int64(1); e <= upto; e++ {
		x = modarith.MulMod(x, base, n)
		rows = append(rows, PowerRow{Exponent: e, Value: x})
	}
	return rows, nil
}

// FirstRepeat returns the smallest exponent x >= 1 with a^x mod n == 1 in
// rows, or NotFound.
func FirstRepeat(rows []PowerRow) int64 {
	for _, row := range rows {
		if row.Value == 1 {
			return row.Exponent
		}
	}
	return NotFound
}
