package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Accepted header spellings per logical column, most specific first.
var (
	NameAliases = []string{"PRODUCTO", "PRODUCT", "NOMBRE"}

	ListPriceAliases = []string{
		"PRECIO LISTA HASTA 3 SIN INTERES",
		"PRECIO DE LISTA HASTA 3 SIN INTERES",
		"PRECIO LISTA",
		"PRECIO DE LISTA",
		"LISTA",
		"PRECIO",
	}

	CashPriceAliases = []string{
		"DESCUENTO CONTADO / TRANSFERENCIA",
		"DESCUENTO EFECTIVO / TRANSFERENCIA",
		"EFECTIVO / TRANSFERENCIA",
		"DESCUENTO EFEC TRANSFE",
		"EFECTIVO",
		"CONTADO",
		"TRANSFERENCIA",
		"DESCUENTO",
	}

	ActiveAliases = []string{"ACTIVO", "ACTIVA"}

	ModelURLAliases = []string{"MODELO", "LINK", "URL", "MODELO URL"}
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// NormalizeKey lowercases s, strips diacritics and collapses every run of
// characters outside [a-z0-9] into a single space.
func NormalizeKey(s string) string {
	decomposed, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		decomposed = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	gap := false
	for _, r := range decomposed {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if gap && b.Len() > 0 {
				b.WriteByte(' ')
			}
			gap = false
			b.WriteRune(r)
			continue
		}
		gap = true
	}
	return b.String()
}

// HeaderIndex maps normalized header names to column positions.
type HeaderIndex map[string]int

// BuildHeaderIndex indexes header left to right; a later column wins over
// an earlier one with the same normalized name.
func BuildHeaderIndex(header []string) HeaderIndex {
	index := make(HeaderIndex, len(header))
	for i, cell := range header {
		index[NormalizeKey(cell)] = i
	}
	return index
}

// Pick returns the column of the first alias present in the index.
func (h HeaderIndex) Pick(aliases ...string) (int, bool) {
	for _, alias := range aliases {
		if col, ok := h[NormalizeKey(alias)]; ok {
			return col, true
		}
	}
	return -1, false
}

// Columns holds the resolved positions of the product fields; -1 means the
// sheet has no such column.
type Columns struct {
	Name      int
	ListPrice int
	CashPrice int
	Active    int
	ModelURL  int
}

func ResolveColumns(header []string) Columns {
	index := BuildHeaderIndex(header)
	pick := func(aliases []string) int {
		col, _ := index.Pick(aliases...)
		return col
	}
	return Columns{
		Name:      pick(NameAliases),
		ListPrice: pick(ListPriceAliases),
		CashPrice: pick(CashPriceAliases),
		Active:    pick(ActiveAliases),
		ModelURL:  pick(ModelURLAliases),
	}
}
