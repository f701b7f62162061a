// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"strings"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/patstat"
)

// argList numbers the positional parameters of one query. Appending
// through next keeps every placeholder unique and ascending, which is
// what lets the same SQL text bind under both pgx and sqlite3.
type argList struct {
	args []any
}

// next records v and returns its placeholder.
func (l *argList) next(v any) string {
	l.args = append(l.args, v)
	return fmt.Sprintf("$%d", len(l.args))
}

const applicationColumns = `a.appln_id, a.appln_auth, a.appln_filing_year, a.docdb_family_id,
       COALESCE(t.appln_title, '') AS title,
       COALESCE(ab.appln_abstract, '') AS abstract`

// keywordQuery builds the keyword strategy: case-insensitive substring
// match over title and abstract. Each keyword consumes two
// placeholders because a pattern is never bound twice.
func keywordQuery(def Definition) (string, []any) {
	var l argList
	var b strings.Builder

	fmt.Fprintf(&b, `SELECT %s
FROM tls201_appln a
LEFT JOIN tls202_appln_title t ON t.appln_id = a.appln_id
LEFT JOIN tls203_appln_abstr ab ON ab.appln_id = a.appln_id
WHERE (`, applicationColumns)

	for i, kw := range def.Keywords {
		pattern := "%" + strings.ToLower(strings.TrimSpace(kw)) + "%"
		if i > 0 {
			b.WriteString("\n   OR ")
		}
		fmt.Fprintf(&b, "LOWER(t.appln_title) LIKE %s OR LOWER(ab.appln_abstract) LIKE %s",
			l.next(pattern), l.next(pattern))
	}
	b.WriteString(")")

	for _, cond := range commonConds(&l, def) {
		fmt.Fprintf(&b, "\n  AND %s", cond)
	}
	b.WriteString("\nORDER BY a.appln_id")
	writeLimit(&b, &l, def)

	return b.String(), l.args
}

// classificationQuery builds the CPC strategy: prefix match on the
// classification symbol with the fixed-width padding stripped, so a
// definition can say "C22B 59" and match "C22B  59/00".
func classificationQuery(def Definition) (string, []any) {
	var l argList
	var b strings.Builder

	fmt.Fprintf(&b, `SELECT %s
FROM tls201_appln a
JOIN (
    SELECT DISTINCT appln_id
    FROM tls224_appln_cpc
    WHERE `, applicationColumns)

	for i, prefix := range def.CPCPrefixes {
		if i > 0 {
			b.WriteString("\n       OR ")
		}
		fmt.Fprintf(&b, "REPLACE(cpc_class_symbol, ' ', '') LIKE %s", l.next(cpcPattern(prefix)))
	}
	b.WriteString(`
) c ON c.appln_id = a.appln_id
LEFT JOIN tls202_appln_title t ON t.appln_id = a.appln_id
LEFT JOIN tls203_appln_abstr ab ON ab.appln_id = a.appln_id`)

	conds := commonConds(&l, def)
	for i, cond := range conds {
		if i == 0 {
			fmt.Fprintf(&b, "\nWHERE %s", cond)
		} else {
			fmt.Fprintf(&b, "\n  AND %s", cond)
		}
	}
	b.WriteString("\nORDER BY a.appln_id")
	writeLimit(&b, &l, def)

	return b.String(), l.args
}

// cpcSymbolsQuery fetches the classification symbols for one chunk of
// application ids.
func cpcSymbolsQuery(ids []int64) (string, []any) {
	q := fmt.Sprintf(`SELECT appln_id, cpc_class_symbol
FROM tls224_appln_cpc
WHERE appln_id IN (%s)
ORDER BY appln_id, cpc_class_symbol`, patstat.Placeholders(1, len(ids)))
	return q, patstat.Int64Args(ids)
}

// commonConds appends the filing-year and authority filters shared by
// both strategies.
func commonConds(l *argList, def Definition) []string {
	var conds []string
	if def.YearFrom > 0 {
		conds = append(conds, "a.appln_filing_year >= "+l.next(def.YearFrom))
	}
	if def.YearTo > 0 {
		conds = append(conds, "a.appln_filing_year <= "+l.next(def.YearTo))
	}
	if len(def.Authorities) > 0 {
		ph := make([]string, len(def.Authorities))
		for i, auth := range def.Authorities {
			ph[i] = l.next(strings.ToUpper(strings.TrimSpace(auth)))
		}
		conds = append(conds, fmt.Sprintf("a.appln_auth IN (%s)", strings.Join(ph, ", ")))
	}
	return conds
}

func writeLimit(b *strings.Builder, l *argList, def Definition) {
	if def.MaxResults > 0 {
		fmt.Fprintf(b, "\nLIMIT %s", l.next(def.MaxResults))
	}
}

// cpcPattern normalizes a definition prefix into the LIKE pattern used
// against the padding-stripped symbol.
func cpcPattern(prefix string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(prefix), " ", "")) + "%"
}
