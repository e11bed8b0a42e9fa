package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

// MemoryDrivers is an in-process implementation of the Drivers interface. It
// backs the memory store backend and the handler tests.
type MemoryDrivers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Driver
}

// NewMemoryDrivers returns an empty in-memory driver store.
func NewMemoryDrivers() *MemoryDrivers {
	return &MemoryDrivers{nextID: 1, rows: make(map[int64]model.Driver)}
}

func (s *MemoryDrivers) Create(ctx context.Context, d model.Driver) (model.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Id = s.nextID
	s.nextID++
	now := time.Now().UTC().Truncate(time.Second)
	d.CreatedAt = &now
	s.rows[d.Id] = d
	return d, nil
}

func (s *MemoryDrivers) GetByID(ctx context.Context, id int64) (model.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.rows[id]
	if !ok {
		return model.Driver{}, ErrNotFound
	}
	return d, nil
}

func (s *MemoryDrivers) List(ctx context.Context, f DriverFilter) ([]model.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var drivers []model.Driver
	for _, d := range s.rows {
		if f.Team != "" && (d.Team == nil || *d.Team != f.Team) {
			continue
		}
		points := int64(0)
		if d.Points != nil {
			points = *d.Points
		}
		if f.MinPoints != nil && points < *f.MinPoints {
			continue
		}
		if f.MaxPoints != nil && points > *f.MaxPoints {
			continue
		}
		drivers = append(drivers, projectDriver(d, f.Fields))
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].Id < drivers[j].Id })
	return drivers, nil
}

func (s *MemoryDrivers) Update(ctx context.Context, id int64, fields map[string]any) (model.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.rows[id]
	if !ok {
		return model.Driver{}, ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		d.Name = &v
	}
	if v, ok := fields["team"].(string); ok {
		d.Team = &v
	}
	if v, ok := fields["points"].(int64); ok {
		d.Points = &v
	}
	if v, ok := fields["wins"].(int64); ok {
		d.Wins = &v
	}
	if v, ok := fields["podiums"].(int64); ok {
		d.Podiums = &v
	}
	s.rows[id] = d
	return d, nil
}

func (s *MemoryDrivers) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// projectDriver keeps only the requested fields of a driver. The id survives
// every projection, matching the relational adapter.
func projectDriver(d model.Driver, fields []string) model.Driver {
	if len(fields) == 0 {
		return d
	}
	projected := model.Driver{Id: d.Id}
	for _, field := range fields {
		switch field {
		case "name":
			projected.Name = d.Name
		case "team":
			projected.Team = d.Team
		case "points":
			projected.Points = d.Points
		case "wins":
			projected.Wins = d.Wins
		case "podiums":
			projected.Podiums = d.Podiums
		case "created_at":
			projected.CreatedAt = d.CreatedAt
		}
	}
	return projected
}

// MemoryConstructors is an in-process implementation of the Constructors
// interface.
type MemoryConstructors struct {
	mu   sync.Mutex
	docs map[string]model.Constructor
}

// NewMemoryConstructors returns an empty in-memory constructor store.
func NewMemoryConstructors() *MemoryConstructors {
	return &MemoryConstructors{docs: make(map[string]model.Constructor)}
}

func (s *MemoryConstructors) Create(ctx context.Context, con model.Constructor) (model.Constructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	con.Id = bson.NewObjectID()
	s.docs[con.Id.Hex()] = con
	return con, nil
}

func (s *MemoryConstructors) GetByID(ctx context.Context, id string) (model.Constructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	con, ok := s.docs[id]
	if !ok {
		return model.Constructor{}, ErrNotFound
	}
	return con, nil
}

func (s *MemoryConstructors) List(ctx context.Context, f ConstructorFilter) ([]model.Constructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var constructors []model.Constructor
	for _, con := range s.docs {
		if f.Team != "" && (con.Team == nil || *con.Team != f.Team) {
			continue
		}
		if f.Season != nil && (con.Season == nil || *con.Season != *f.Season) {
			continue
		}
		points := int64(0)
		if con.Points != nil {
			points = *con.Points
		}
		if f.MinPoints != nil && points < *f.MinPoints {
			continue
		}
		if f.MaxPoints != nil && points > *f.MaxPoints {
			continue
		}
		constructors = append(constructors, projectConstructor(con, f.Fields))
	}
	sort.Slice(constructors, func(i, j int) bool {
		var pi, pj int64
		if constructors[i].Position != nil {
			pi = *constructors[i].Position
		}
		if constructors[j].Position != nil {
			pj = *constructors[j].Position
		}
		return pi < pj
	})
	return constructors, nil
}

func (s *MemoryConstructors) Update(ctx context.Context, id string, fields map[string]any) (model.Constructor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	con, ok := s.docs[id]
	if !ok {
		return model.Constructor{}, ErrNotFound
	}
	if v, ok := fields["position"].(int64); ok {
		con.Position = &v
	}
	if v, ok := fields["team"].(string); ok {
		con.Team = &v
	}
	if v, ok := fields["color"].(string); ok {
		con.Color = &v
	}
	if v, ok := fields["drivers"].(string); ok {
		con.Drivers = &v
	}
	if v, ok := fields["points"].(int64); ok {
		con.Points = &v
	}
	if v, ok := fields["wins"].(int64); ok {
		con.Wins = &v
	}
	if v, ok := fields["podiums"].(int64); ok {
		con.Podiums = &v
	}
	if v, ok := fields["season"].(int64); ok {
		con.Season = &v
	}
	s.docs[id] = con
	return con, nil
}

func (s *MemoryConstructors) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// projectConstructor keeps only the requested fields of a constructor.
func projectConstructor(con model.Constructor, fields []string) model.Constructor {
	if len(fields) == 0 {
		return con
	}
	projected := model.Constructor{Id: con.Id}
	for _, field := range fields {
		switch field {
		case "position":
			projected.Position = con.Position
		case "team":
			projected.Team = con.Team
		case "color":
			projected.Color = con.Color
		case "drivers":
			projected.Drivers = con.Drivers
		case "points":
			projected.Points = con.Points
		case "wins":
			projected.Wins = con.Wins
		case "podiums":
			projected.Podiums = con.Podiums
		case "season":
			projected.Season = con.Season
		}
	}
	return projected
}

// MemoryContacts is an in-process implementation of the Contacts interface.
type MemoryContacts struct {
	mu    sync.Mutex
	order []string
	docs  map[string]model.Contact
}

// NewMemoryContacts returns an empty in-memory contact store.
func NewMemoryContacts() *MemoryContacts {
	return &MemoryContacts{docs: make(map[string]model.Contact)}
}

func (s *MemoryContacts) Create(ctx context.Context, m model.Contact) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.Id = bson.NewObjectID()
	if m.SubmittedAt == nil {
		now := time.Now().UTC().Truncate(time.Millisecond)
		m.SubmittedAt = &now
	}
	s.docs[m.Id.Hex()] = m
	s.order = append(s.order, m.Id.Hex())
	return m, nil
}

func (s *MemoryContacts) GetByID(ctx context.Context, id string) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.docs[id]
	if !ok {
		return model.Contact{}, ErrNotFound
	}
	return m, nil
}

func (s *MemoryContacts) List(ctx context.Context) ([]model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var contacts []model.Contact
	for _, id := range s.order {
		if m, ok := s.docs[id]; ok {
			contacts = append(contacts, m)
		}
	}
	return contacts, nil
}

func (s *MemoryContacts) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}
