package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricetag/internal/catalog"
	"pricetag/internal/extract"
	"pricetag/internal/project"
	"pricetag/internal/render"
)

type fakeExtractor struct {
	records []catalog.Record
	err     error
}

func (f *fakeExtractor) ExtractReader(ctx context.Context, r io.Reader) (*extract.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &extract.Result{Records: f.records, Pages: 1}, nil
}

func ocrRecord(name, price, sku string) catalog.Record {
	rec := catalog.Record{ProductName: name, Price: price, SKU: sku, Origin: &catalog.Origin{}}
	catalog.Normalize(&rec)
	return rec
}

func newState(ex Extractor) *State {
	return NewState(ex, render.NewRenderer(nil), nil)
}

func TestLoadCatalogReplaces(t *testing.T) {
	ex := &fakeExtractor{records: []catalog.Record{
		ocrRecord("Alpha Stove", "100.00", "A-1"),
		ocrRecord("Bravo Stove", "", "B-2"),
	}}
	s := newState(ex)
	_, err := s.AddManual(catalog.Record{ProductName: "Manual", Price: "5", SKU: "M-1"})
	require.NoError(t, err)

	var replaced int
	s.On(EventRecordsReplaced, func(data interface{}) { replaced = data.(int) })

	res, err := s.LoadCatalog(context.Background(), bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 2, replaced)

	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "A-1", recs[0].SKU)
	assert.False(t, recs[0].Selected)
	assert.Equal(t, catalog.FieldSet{catalog.FieldPrice}, recs[1].Missing)
}

func TestLoadCatalogFailureClears(t *testing.T) {
	ex := &fakeExtractor{err: extract.ErrNoPages}
	s := newState(ex)
	_, err := s.AddManual(catalog.Record{ProductName: "Manual", Price: "5", SKU: "M-1"})
	require.NoError(t, err)

	_, err = s.LoadCatalog(context.Background(), bytes.NewReader(nil))
	assert.ErrorIs(t, err, extract.ErrNoPages)
	assert.Zero(t, s.Len())
}

func TestAddManualSelectsAndCanonicalizes(t *testing.T) {
	s := newState(nil)
	i, err := s.AddManual(catalog.Record{ProductName: " Fire  Screen ", Price: "$1,299.5", SKU: "FS-9"})
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	rec := s.Records()[0]
	assert.True(t, rec.Selected)
	assert.Equal(t, "1299.50", rec.Price)
	assert.Equal(t, "Fire Screen", rec.ProductName)
	assert.Equal(t, "FS9", rec.Barcode)
	assert.True(t, rec.Complete())

	_, err = s.AddManual(catalog.Record{ProductName: "Bad", Price: "abc"})
	assert.ErrorIs(t, err, catalog.ErrInvalidPrice)
	assert.Equal(t, 1, s.Len())
}

func TestEdit(t *testing.T) {
	s := newState(&fakeExtractor{records: []catalog.Record{ocrRecord("Alpha Stove", "", "A-1")}})
	_, err := s.LoadCatalog(context.Background(), bytes.NewReader(nil))
	require.NoError(t, err)

	changed := -1
	s.On(EventRecordChanged, func(data interface{}) { changed = data.(int) })

	require.NoError(t, s.Edit(0, catalog.FieldPrice, "250"))
	assert.Equal(t, 0, changed)
	rec := s.Records()[0]
	assert.Equal(t, "250.00", rec.Price)
	assert.True(t, rec.Complete())

	err = s.Edit(0, catalog.FieldPrice, "free")
	assert.ErrorIs(t, err, catalog.ErrInvalidPrice)
	assert.Equal(t, "250.00", s.Records()[0].Price)

	require.NoError(t, s.Edit(0, catalog.FieldSKU, "ZZ-99"))
	assert.Equal(t, "ZZ99", s.Records()[0].Barcode)

	assert.ErrorIs(t, s.Edit(0, catalog.FieldBarcode, "X"), catalog.ErrBarcodeDerived)
	assert.ErrorIs(t, s.Edit(3, catalog.FieldSKU, "X"), ErrNoRecord)
}

func TestRemoveAndSelect(t *testing.T) {
	s := newState(&fakeExtractor{records: []catalog.Record{
		ocrRecord("Alpha Stove", "1", "A-1"),
		ocrRecord("Bravo Stove", "2", "B-2"),
		ocrRecord("Charlie Stove", "3", "C-3"),
	}})
	_, err := s.LoadCatalog(context.Background(), bytes.NewReader(nil))
	require.NoError(t, err)

	require.NoError(t, s.Remove(1))
	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "C-3", recs[1].SKU)
	assert.ErrorIs(t, s.Remove(5), ErrNoRecord)

	require.NoError(t, s.SetSelected(1, true))
	assert.True(t, s.Records()[1].Selected)
	assert.ErrorIs(t, s.SetSelected(-1, true), ErrNoRecord)

	s.SelectAll(true)
	for _, r := range s.Records() {
		assert.True(t, r.Selected)
	}
	s.SelectAll(false)
	for _, r := range s.Records() {
		assert.False(t, r.Selected)
	}
}

func TestGenerate(t *testing.T) {
	s := newState(&fakeExtractor{records: []catalog.Record{
		ocrRecord("Alpha Stove", "100", "A-1"),
		ocrRecord("Bravo Stove", "", "B-2"),
	}})
	_, err := s.LoadCatalog(context.Background(), bytes.NewReader(nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = s.Generate(&buf)
	assert.True(t, errors.Is(err, catalog.ErrEmptyBatch))
	assert.Zero(t, buf.Len())

	s.SelectAll(true)
	var rendered bool
	s.On(EventBatchRendered, func(interface{}) { rendered = true })

	report, err := s.Generate(&buf)
	require.NoError(t, err)
	assert.True(t, rendered)
	assert.Equal(t, 1, report.Printed)
	require.Len(t, report.Blocked, 1)
	assert.Equal(t, 1, report.Blocked[0].Index)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestProjectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.json")

	s := newState(nil)
	_, err := s.AddManual(catalog.Record{ProductName: "Manual Tag", Price: "9.99", SKU: "M-1"})
	require.NoError(t, err)
	assert.True(t, s.Modified)
	require.NoError(t, s.SaveProject(project.New(), path))
	assert.False(t, s.Modified)

	f, err := project.Load(path)
	require.NoError(t, err)
	other := newState(nil)
	other.LoadProject(f)
	assert.Equal(t, s.Records(), other.Records())
	assert.False(t, other.Modified)
}
