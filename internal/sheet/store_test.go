package sheet

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRangeAPI is an in-memory stand-in for the spreadsheet values API.
// rows[0] corresponds to sheet row DataStartRow.
type fakeRangeAPI struct {
	rows [][]string
}

var rangeStartRe = regexp.MustCompile(`!A(\d+)`)

func (f *fakeRangeAPI) startRow(rangeA1 string) int {
	m := rangeStartRe.FindStringSubmatch(rangeA1)
	if m == nil {
		panic(fmt.Sprintf("unparseable range %q", rangeA1))
	}
	start, _ := strconv.Atoi(m[1])
	return start
}

func (f *fakeRangeAPI) Get(_ context.Context, rangeA1 string) ([][]string, error) {
	idx := f.startRow(rangeA1) - DataStartRow
	if idx >= len(f.rows) {
		return nil, nil
	}
	out := make([][]string, len(f.rows)-idx)
	for i, row := range f.rows[idx:] {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (f *fakeRangeAPI) Append(_ context.Context, _ string, row []string, _ bool) error {
	f.rows = append(f.rows, append([]string(nil), row...))
	return nil
}

func (f *fakeRangeAPI) Update(_ context.Context, rangeA1 string, rows [][]string, _ bool) error {
	idx := f.startRow(rangeA1) - DataStartRow
	for i, row := range rows {
		if idx+i >= len(f.rows) {
			return fmt.Errorf("update past populated range at %d", idx+i)
		}
		f.rows[idx+i] = append([]string(nil), row...)
	}
	return nil
}

func (f *fakeRangeAPI) Clear(_ context.Context, rangeA1 string) error {
	idx := f.startRow(rangeA1) - DataStartRow
	if idx < 0 || idx >= len(f.rows) {
		return nil
	}
	f.rows[idx] = make([]string, RowWidth)
	// The real API stops returning trailing rows once they are blank
	for len(f.rows) > 0 && isBlank(f.rows[len(f.rows)-1]) {
		f.rows = f.rows[:len(f.rows)-1]
	}
	return nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func newTestStore() (*Store, *fakeRangeAPI) {
	api := &fakeRangeAPI{}
	return NewStore(api, "Listings", zap.NewNop()), api
}

func TestAppendAndGet(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	pos, err := store.Append(ctx, map[string]string{
		FieldName:      "An",
		FieldMobile:    "0901112222",
		FieldPlatforms: "Facebook",
	})
	require.NoError(t, err)
	assert.Equal(t, DataStartRow, pos)

	fields, err := store.Get(ctx, pos)
	require.NoError(t, err)
	assert.Equal(t, "An", fields[FieldName])
	assert.Equal(t, "0901112222", fields[FieldMobile])
	assert.Equal(t, "Facebook", fields[FieldPlatforms])
	// Fields not supplied on append default to empty
	assert.Equal(t, "", fields[FieldPrice])
	assert.Equal(t, "", fields[FieldEmail])
}

func TestGetOutOfRange(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.Get(ctx, DataStartRow)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, _ = store.Append(ctx, map[string]string{FieldName: "An"})

	_, err = store.Get(ctx, DataStartRow+1)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestUpdateMergesOnlyPresentFields(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	pos, err := store.Append(ctx, map[string]string{
		FieldName:   "An",
		FieldMobile: "0901112222",
		FieldArea:   "Quận 7",
	})
	require.NoError(t, err)

	err = store.Update(ctx, pos, map[string]string{FieldPrice: "2 tỷ"}, true)
	require.NoError(t, err)

	fields, err := store.Get(ctx, pos)
	require.NoError(t, err)
	assert.Equal(t, "2 tỷ", fields[FieldPrice])
	assert.Equal(t, "An", fields[FieldName])
	assert.Equal(t, "0901112222", fields[FieldMobile])
	assert.Equal(t, "Quận 7", fields[FieldArea])
}

func TestUpdateIgnoresUnknownKeys(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	pos, _ := store.Append(ctx, map[string]string{FieldName: "An"})

	err := store.Update(ctx, pos, map[string]string{"no_such_column": "x", FieldNote: "gọi lại"}, true)
	require.NoError(t, err)

	fields, _ := store.Get(ctx, pos)
	assert.Equal(t, "gọi lại", fields[FieldNote])
	assert.Equal(t, "An", fields[FieldName])
}

func TestUpdateOutOfRange(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	err := store.Update(ctx, DataStartRow, map[string]string{FieldName: "x"}, true)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestDeleteShiftsFollowingRowsUp(t *testing.T) {
	store, api := newTestStore()
	ctx := context.Background()

	for _, name := range []string{"An", "Bình", "Chi", "Dũng"} {
		_, err := store.Append(ctx, map[string]string{FieldName: name})
		require.NoError(t, err)
	}

	err := store.Delete(ctx, DataStartRow+1) // delete Bình
	require.NoError(t, err)

	fields, err := store.Get(ctx, DataStartRow)
	require.NoError(t, err)
	assert.Equal(t, "An", fields[FieldName])

	fields, err = store.Get(ctx, DataStartRow+1)
	require.NoError(t, err)
	assert.Equal(t, "Chi", fields[FieldName])

	fields, err = store.Get(ctx, DataStartRow+2)
	require.NoError(t, err)
	assert.Equal(t, "Dũng", fields[FieldName])

	// The old last row is gone
	_, err = store.Get(ctx, DataStartRow+3)
	assert.ErrorIs(t, err, ErrInvalidPosition)
	assert.Len(t, api.rows, 3)
}

func TestDeleteLastRow(t *testing.T) {
	store, api := newTestStore()
	ctx := context.Background()

	_, _ = store.Append(ctx, map[string]string{FieldName: "An"})
	pos, _ := store.Append(ctx, map[string]string{FieldName: "Bình"})

	err := store.Delete(ctx, pos)
	require.NoError(t, err)

	assert.Len(t, api.rows, 1)
	fields, err := store.Get(ctx, DataStartRow)
	require.NoError(t, err)
	assert.Equal(t, "An", fields[FieldName])
}

func TestDeleteOnEmptyTable(t *testing.T) {
	store, _ := newTestStore()

	err := store.Delete(context.Background(), DataStartRow)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestCreateUpdateDeleteScenario(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	pos, err := store.Append(ctx, map[string]string{
		FieldName:      "An",
		FieldMobile:    "0901112222",
		FieldPlatforms: "Facebook",
	})
	require.NoError(t, err)

	err = store.Update(ctx, pos, map[string]string{FieldPrice: "2 tỷ"}, true)
	require.NoError(t, err)

	fields, err := store.Get(ctx, pos)
	require.NoError(t, err)
	assert.Equal(t, "2 tỷ", fields[FieldPrice])
	assert.Equal(t, "An", fields[FieldName])

	lastPos, err := store.Append(ctx, map[string]string{FieldName: "Bình"})
	require.NoError(t, err)

	err = store.Delete(ctx, pos)
	require.NoError(t, err)

	fields, err = store.Get(ctx, pos)
	require.NoError(t, err)
	assert.Equal(t, "Bình", fields[FieldName])

	_, err = store.Get(ctx, lastPos)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestListByEmail(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, _ = store.Append(ctx, map[string]string{FieldName: "An", FieldEmail: "an@minhland.com"})
	_, _ = store.Append(ctx, map[string]string{FieldName: "Bình", FieldEmail: "binh@minhland.com"})
	_, _ = store.Append(ctx, map[string]string{FieldName: "Chi", FieldEmail: "an@minhland.com"})

	records, err := store.ListByEmail(ctx, "an@minhland.com")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, DataStartRow, records[0].Position)
	assert.Equal(t, "An", records[0].Fields[FieldName])
	assert.Equal(t, DataStartRow+2, records[1].Position)
	assert.Equal(t, "Chi", records[1].Fields[FieldName])

	// Exact match only
	records, err = store.ListByEmail(ctx, "an@minhland")
	require.NoError(t, err)
	assert.Empty(t, records)
}
