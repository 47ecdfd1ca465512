package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mytheresa/catalog-model/models"
	"github.com/shopspring/decimal"
)

// Prompt asks yes/no questions on a terminal-like pair of streams.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ConfirmPriceDecrease has the shape of models.ConfirmFunc. Only an
// explicit yes ("y", "yes", "д", "да") confirms; EOF and read errors decline.
func (p *Prompt) ConfirmPriceDecrease(current, proposed decimal.Decimal) bool {
	fmt.Fprintf(p.out, "Цена снижается с %s до %s руб. Подтвердить? (y/n): ",
		models.FormatPrice(current), models.FormatPrice(proposed))

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return true
	default:
		return false
	}
}
