package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nekogravitycat/freight-booking-backend/internal/confirmation"
	"github.com/nekogravitycat/freight-booking-backend/internal/event"
	"github.com/nekogravitycat/freight-booking-backend/internal/location"
	"github.com/nekogravitycat/freight-booking-backend/internal/vessel"
	"github.com/nekogravitycat/freight-booking-backend/internal/voyage"
)

// memStore is an in-memory Repository and TxManager. Transactions run one at a
// time and roll back by restoring a snapshot.
type memStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	seq      int
	bookings []Booking
	tables   []snapshotter

	// Hooks run inside the transaction, before the conditional writes.
	beforeSupersede    func(s *memStore)
	beforeUpdateStatus func(s *memStore)
}

type snapshotter interface {
	snapshot() (restore func())
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	restore := s.snapshot()
	if err := fn(ctx); err != nil {
		restore()
		return err
	}
	return nil
}

func (s *memStore) snapshot() func() {
	s.mu.Lock()
	saved := append([]Booking(nil), s.bookings...)
	s.mu.Unlock()

	restores := make([]func(), len(s.tables))
	for i, t := range s.tables {
		restores[i] = t.snapshot()
	}
	return func() {
		s.mu.Lock()
		s.bookings = saved
		s.mu.Unlock()
		for _, r := range restores {
			r()
		}
	}
}

func (s *memStore) Insert(_ context.Context, b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	if b.Reference == "" {
		b.Reference = fmt.Sprintf("REF%04d", s.seq)
	}
	for _, existing := range s.bookings {
		if existing.Reference == b.Reference && existing.SupersededAt == nil {
			return ErrConcurrentUpdate
		}
	}
	b.ID = fmt.Sprintf("b%d", s.seq)
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *memStore) ListActive(_ context.Context, reference string) ([]*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Booking
	for _, b := range s.bookings {
		if b.Reference == reference && b.SupersededAt == nil {
			copied := b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memStore) Supersede(_ context.Context, id string, at time.Time) (bool, error) {
	if s.beforeSupersede != nil {
		s.beforeSupersede(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		if s.bookings[i].ID == id && s.bookings[i].SupersededAt == nil {
			s.bookings[i].SupersededAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) UpdateStatus(_ context.Context, reference string, from, to Status, at time.Time) (bool, error) {
	if s.beforeUpdateStatus != nil {
		s.beforeUpdateStatus(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.bookings {
		b := &s.bookings[i]
		if b.Reference == reference && b.Status == from && b.SupersededAt == nil {
			b.Status = to
			b.UpdatedAt = at
			n++
		}
	}
	return n > 0, nil
}

func (s *memStore) List(_ context.Context, q ListQuery) ([]*Booking, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Booking
	for _, b := range s.bookings {
		if b.SupersededAt != nil || (q.Status != "" && b.Status != q.Status) {
			continue
		}
		copied := b
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (s *memStore) History(_ context.Context, reference string) ([]*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Booking
	for _, b := range s.bookings {
		if b.Reference == reference {
			copied := b
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// mutate changes the stored active revision of reference, as another writer would.
func (s *memStore) mutate(reference string, fn func(b *Booking)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].Reference == reference && s.bookings[i].SupersededAt == nil {
			fn(&s.bookings[i])
		}
	}
}

func (s *memStore) activeCount(reference string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.Reference == reference && b.SupersededAt == nil {
			n++
		}
	}
	return n
}

func (s *memStore) revisionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// memTable is an in-memory ChildGateway.
type memTable[T any] struct {
	mu      sync.Mutex
	rows    map[string][]T
	inserts int
	err     error
}

func newMemTable[T any](s *memStore) *memTable[T] {
	t := &memTable[T]{rows: map[string][]T{}}
	s.tables = append(s.tables, t)
	return t
}

func (t *memTable[T]) Insert(_ context.Context, bookingID string, items []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.inserts++
	t.rows[bookingID] = append(t.rows[bookingID], items...)
	return nil
}

func (t *memTable[T]) ListByBookingID(_ context.Context, bookingID string) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	rows, ok := t.rows[bookingID]
	if !ok {
		return nil, nil
	}
	return append([]T(nil), rows...), nil
}

func (t *memTable[T]) snapshot() func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	saved := make(map[string][]T, len(t.rows))
	for k, v := range t.rows {
		saved[k] = append([]T(nil), v...)
	}
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.rows = saved
	}
}

func (t *memTable[T]) total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, v := range t.rows {
		n += len(v)
	}
	return n
}

type memGateways struct {
	cargo      *memTable[CargoItem]
	services   *memTable[ServiceRequest]
	equipment  *memTable[RequestedEquipment]
	parties    *memTable[Party]
	locations  *memTable[ShipmentLocation]
	references *memTable[Reference]
}

func newMemGateways(s *memStore) *memGateways {
	return &memGateways{
		cargo:      newMemTable[CargoItem](s),
		services:   newMemTable[ServiceRequest](s),
		equipment:  newMemTable[RequestedEquipment](s),
		parties:    newMemTable[Party](s),
		locations:  newMemTable[ShipmentLocation](s),
		references: newMemTable[Reference](s),
	}
}

func (g *memGateways) Gateways() Gateways {
	return Gateways{
		CargoItems:         g.cargo,
		ServiceRequests:    g.services,
		RequestedEquipment: g.equipment,
		Parties:            g.parties,
		Locations:          g.locations,
		References:         g.references,
	}
}

func (g *memGateways) totalRows() int {
	return g.cargo.total() + g.services.total() + g.equipment.total() +
		g.parties.total() + g.locations.total() + g.references.total()
}

type fakeVessels struct {
	vessels []*vessel.Vessel
}

func (f *fakeVessels) FindByIMO(_ context.Context, imo string) (*vessel.Vessel, error) {
	for _, v := range f.vessels {
		if v.IMONumber == imo {
			return v, nil
		}
	}
	return nil, vessel.ErrNotFound
}

func (f *fakeVessels) FindByName(_ context.Context, name string) ([]*vessel.Vessel, error) {
	var out []*vessel.Vessel
	for _, v := range f.vessels {
		if v.Name == name {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVessels) GetByID(_ context.Context, id string) (*vessel.Vessel, error) {
	for _, v := range f.vessels {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, vessel.ErrNotFound
}

type fakeVoyages struct {
	voyages []*voyage.Voyage
}

func (f *fakeVoyages) FindByNumber(_ context.Context, number string) (*voyage.Voyage, error) {
	for _, v := range f.voyages {
		if v.CarrierVoyageNumber == number {
			return v, nil
		}
	}
	return nil, voyage.ErrNotFound
}

func (f *fakeVoyages) GetByID(_ context.Context, id string) (*voyage.Voyage, error) {
	for _, v := range f.voyages {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, voyage.ErrNotFound
}

// fakeLocations resolves descriptors by natural key.
type fakeLocations struct {
	mu   sync.Mutex
	byID map[string]location.Descriptor
	keys map[string]string
}

func newFakeLocations() *fakeLocations {
	return &fakeLocations{byID: map[string]location.Descriptor{}, keys: map[string]string{}}
}

func (f *fakeLocations) Resolve(_ context.Context, d location.Descriptor) (string, error) {
	if d.IsEmpty() {
		return "", location.ErrEmptyLocation
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.keys[d.NaturalKey()]; ok {
		return id, nil
	}
	id := fmt.Sprintf("loc%d", len(f.keys)+1)
	f.keys[d.NaturalKey()] = id
	f.byID[id] = d
	return id, nil
}

func (f *fakeLocations) GetByID(_ context.Context, id string) (*location.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.byID[id]
	if !ok {
		return nil, location.ErrLocNotFound
	}
	return &location.Location{ID: id, Descriptor: d}, nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (r *recordingSink) Notify(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *recordingSink) kinds() []event.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

type stubConfirmations struct{}

func (stubConfirmations) GetByBookingID(_ context.Context, bookingID string) (*confirmation.Confirmation, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, errors.New("empty booking id")
	}
	return &confirmation.Confirmation{BookingID: bookingID}, nil
}
