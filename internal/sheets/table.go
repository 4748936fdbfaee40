package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// headerRows is the number of rows above the data: the column titles.
const headerRows = 1

// rowCache holds the raw data rows of each loaded sheet, keyed by sheet
// name. Writes to a sheet evict its entry.
type rowCache = expirable.LRU[string, [][]string]

// newRowCache returns nil when ttl is zero, which disables caching.
func newRowCache(ttl time.Duration) *rowCache {
	if ttl <= 0 {
		return nil
	}
	return expirable.NewLRU[string, [][]string](0, nil, ttl)
}

// codec maps a record onto one spreadsheet row.
type codec[T any] struct {
	lastCol string
	encode  func(v *T) []string
	// decode returns false for rows missing a required column; such rows
	// (including cleared ones) are skipped. rowNum is the 1-based sheet row.
	decode func(row []string, rowNum int) (*T, bool)
}

// located is a decoded record together with its sheet row.
type located[T any] struct {
	value  *T
	rowNum int
}

// table is one sheet holding records of type T below a header row.
type table[T any] struct {
	api   ValuesAPI
	sheet string
	codec codec[T]
	cache *rowCache
}

func newTable[T any](api ValuesAPI, sheet string, c codec[T], cache *rowCache) *table[T] {
	return &table[T]{api: api, sheet: sheet, codec: c, cache: cache}
}

func (t *table[T]) dataRange() string {
	return fmt.Sprintf("%s!A%d:%s", quoteSheet(t.sheet), headerRows+1, t.codec.lastCol)
}

func (t *table[T]) appendRange() string {
	return fmt.Sprintf("%s!A:%s", quoteSheet(t.sheet), t.codec.lastCol)
}

func (t *table[T]) rowRange(rowNum int) string {
	return fmt.Sprintf("%s!A%d:%s%d", quoteSheet(t.sheet), rowNum, t.codec.lastCol, rowNum)
}

func (t *table[T]) rows(ctx context.Context) ([][]string, error) {
	if t.cache != nil {
		if rows, ok := t.cache.Get(t.sheet); ok {
			return rows, nil
		}
	}
	rows, err := t.api.Get(ctx, t.dataRange())
	if err != nil {
		return nil, err
	}
	if t.cache != nil {
		t.cache.Add(t.sheet, rows)
	}
	return rows, nil
}

func (t *table[T]) invalidate() {
	if t.cache != nil {
		t.cache.Remove(t.sheet)
	}
}

// all decodes every valid row in sheet order.
func (t *table[T]) all(ctx context.Context) ([]located[T], error) {
	rows, err := t.rows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]located[T], 0, len(rows))
	for i, row := range rows {
		rowNum := i + headerRows + 1
		if v, ok := t.codec.decode(row, rowNum); ok {
			out = append(out, located[T]{value: v, rowNum: rowNum})
		}
	}
	return out, nil
}

func (t *table[T]) list(ctx context.Context) ([]*T, error) {
	return t.filter(ctx, func(*T) bool { return true })
}

func (t *table[T]) filter(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	recs, err := t.all(ctx)
	if err != nil {
		return nil, err
	}
	var out []*T
	for _, r := range recs {
		if keep(r.value) {
			out = append(out, r.value)
		}
	}
	return out, nil
}

// locate returns every record matching pred along with its row.
func (t *table[T]) locate(ctx context.Context, pred func(*T) bool) ([]located[T], error) {
	recs, err := t.all(ctx)
	if err != nil {
		return nil, err
	}
	var out []located[T]
	for _, r := range recs {
		if pred(r.value) {
			out = append(out, r)
		}
	}
	return out, nil
}

// first returns the first record matching pred.
func (t *table[T]) first(ctx context.Context, pred func(*T) bool) (located[T], bool, error) {
	recs, err := t.locate(ctx, pred)
	if err != nil || len(recs) == 0 {
		return located[T]{}, false, err
	}
	return recs[0], true, nil
}

func (t *table[T]) insert(ctx context.Context, v *T) error {
	defer t.invalidate()
	return t.api.Append(ctx, t.appendRange(), [][]string{t.codec.encode(v)})
}

func (t *table[T]) put(ctx context.Context, rowNum int, v *T) error {
	defer t.invalidate()
	return t.api.Update(ctx, t.rowRange(rowNum), [][]string{t.codec.encode(v)})
}

func (t *table[T]) clearRow(ctx context.Context, rowNum int) error {
	defer t.invalidate()
	return t.api.Clear(ctx, t.rowRange(rowNum))
}

// quoteSheet quotes a sheet name for A1 notation when it contains
// anything besides letters, digits and underscores.
func quoteSheet(name string) string {
	plain := name != ""
	for _, r := range name {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// syntheticID names a row that was typed into the sheet without an id.
// It is written back on the next update, which makes it stable.
func syntheticID(rowNum int) string {
	return "row-" + strconv.Itoa(rowNum)
}
