// Package app provides the session state: the mutable record collection,
// its lifecycle operations, and change events.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"pricetag/internal/catalog"
	"pricetag/internal/extract"
	"pricetag/internal/project"
	"pricetag/internal/render"
)

// ErrNoRecord is returned for an index outside the collection.
var ErrNoRecord = errors.New("no such record")

// Extractor produces records from an uploaded catalog.
type Extractor interface {
	ExtractReader(ctx context.Context, r io.Reader) (*extract.Result, error)
}

// Renderer writes a print batch.
type Renderer interface {
	Render(w io.Writer, records []catalog.Record) (render.Report, error)
}

// EventType identifies different session events.
type EventType int

const (
	EventRecordsReplaced EventType = iota
	EventRecordAdded
	EventRecordChanged
	EventRecordRemoved
	EventSelectionChanged
	EventBatchRendered
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the session's records. Only one request touches it at a time
// in practice; the lock keeps listeners and accessors consistent anyway.
type State struct {
	mu sync.RWMutex

	records  []catalog.Record
	Modified bool

	extractor Extractor
	renderer  Renderer
	logger    *zap.Logger

	listeners map[EventType][]EventListener
}

// NewState creates an empty session.
func NewState(ex Extractor, r Renderer, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		extractor: ex,
		renderer:  r,
		logger:    logger,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

func (s *State) setModified() {
	s.mu.Lock()
	s.Modified = true
	s.mu.Unlock()
	s.Emit(EventModified, true)
}

// LoadCatalog extracts records from an uploaded catalog and replaces the
// collection with them. On failure the previous records are cleared and the
// error is returned.
func (s *State) LoadCatalog(ctx context.Context, r io.Reader) (*extract.Result, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("no extractor configured")
	}
	res, err := s.extractor.ExtractReader(ctx, r)
	if err != nil {
		s.logger.Error("catalog extraction failed", zap.Error(err))
		s.Replace(nil)
		return nil, err
	}
	s.Replace(res.Records)
	return res, nil
}

// Replace swaps in a new collection, renormalizing every record.
func (s *State) Replace(records []catalog.Record) {
	recs := make([]catalog.Record, len(records))
	copy(recs, records)
	for i := range recs {
		catalog.Normalize(&recs[i])
	}

	s.mu.Lock()
	s.records = recs
	s.mu.Unlock()

	s.Emit(EventRecordsReplaced, len(recs))
	s.setModified()
}

// AddManual appends a manually entered record, selected for print, and
// returns its index. A price, if given, must be a positive amount.
func (s *State) AddManual(rec catalog.Record) (int, error) {
	if rec.Price != "" {
		price, err := catalog.CanonicalPrice(rec.Price)
		if err != nil {
			return -1, err
		}
		rec.Price = price
	}
	rec.Origin = nil
	rec.Selected = true
	catalog.Normalize(&rec)

	s.mu.Lock()
	s.records = append(s.records, rec)
	i := len(s.records) - 1
	s.mu.Unlock()

	s.logger.Info("record added", zap.String("label", rec.Label()), zap.Stringer("missing", rec.Missing))
	s.Emit(EventRecordAdded, i)
	s.setModified()
	return i, nil
}

// Edit applies one field edit to record i. Invalid prices leave the record
// unchanged.
func (s *State) Edit(i int, field catalog.Field, value string) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.records) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoRecord, i+1)
	}
	rec := s.records[i]
	if err := rec.Set(field, value); err != nil {
		s.mu.Unlock()
		return err
	}
	s.records[i] = rec
	s.mu.Unlock()

	s.Emit(EventRecordChanged, i)
	s.setModified()
	return nil
}

// Remove deletes record i; later records shift down.
func (s *State) Remove(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.records) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoRecord, i+1)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	s.mu.Unlock()

	s.Emit(EventRecordRemoved, i)
	s.setModified()
	return nil
}

// SetSelected toggles print selection for record i.
func (s *State) SetSelected(i int, selected bool) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.records) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoRecord, i+1)
	}
	s.records[i].Selected = selected
	s.mu.Unlock()

	s.Emit(EventSelectionChanged, i)
	s.setModified()
	return nil
}

// SelectAll sets print selection on every record.
func (s *State) SelectAll(selected bool) {
	s.mu.Lock()
	for i := range s.records {
		s.records[i].Selected = selected
	}
	s.mu.Unlock()

	s.Emit(EventSelectionChanged, -1)
	s.setModified()
}

// Records returns a copy of the collection.
func (s *State) Records() []catalog.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Generate renders the printable selection to w.
func (s *State) Generate(w io.Writer) (render.Report, error) {
	if s.renderer == nil {
		return render.Report{}, fmt.Errorf("no renderer configured")
	}
	report, err := s.renderer.Render(w, s.Records())
	if err != nil {
		return report, err
	}
	s.Emit(EventBatchRendered, report)
	return report, nil
}

// LoadProject replaces the collection with a session file's records.
func (s *State) LoadProject(f *project.File) {
	s.Replace(f.Records)
	s.mu.Lock()
	s.Modified = false
	s.mu.Unlock()
}

// SaveProject stores the collection into f and writes it to path.
func (s *State) SaveProject(f *project.File, path string) error {
	f.Records = s.Records()
	if err := f.Save(path); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.mu.Lock()
	s.Modified = false
	s.mu.Unlock()
	return nil
}
