package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/repositories"
)

// --- identity / employees ---

type fakeEmployeeStore struct {
	mu        sync.Mutex
	employees map[string]*models.Employee // by code
	bindings  map[string]int64            // chat identity -> employee id
	nextID    int64
	failWith  error
}

func newFakeEmployeeStore(employees ...models.Employee) *fakeEmployeeStore {
	s := &fakeEmployeeStore{employees: map[string]*models.Employee{}, bindings: map[string]int64{}}
	for _, e := range employees {
		e := e
		if e.ID == 0 {
			s.nextID++
			e.ID = s.nextID
		} else if e.ID > s.nextID {
			s.nextID = e.ID
		}
		if e.Status == "" {
			e.Status = models.EmployeeStatusActive
		}
		if e.PreferredLanguage == "" {
			e.PreferredLanguage = models.LangZh
		}
		s.employees[e.Code] = &e
	}
	return s
}

func summaryOf(e *models.Employee) *models.EmployeeSummary {
	return &models.EmployeeSummary{ID: e.ID, Code: e.Code, Name: e.Name, ShiftType: e.ShiftType, PreferredLanguage: e.PreferredLanguage}
}

func (s *fakeEmployeeStore) byID(id int64) *models.Employee {
	for _, e := range s.employees {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// IdentityRepository

func (s *fakeEmployeeStore) Bind(ctx context.Context, chatIdentity, employeeCode string) (*models.EmployeeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	e, ok := s.employees[employeeCode]
	if !ok || e.Status != models.EmployeeStatusActive {
		return nil, repositories.ErrNotFound
	}
	s.bindings[chatIdentity] = e.ID
	return summaryOf(e), nil
}

func (s *fakeEmployeeStore) Resolve(ctx context.Context, chatIdentity string) (*models.EmployeeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	id, ok := s.bindings[chatIdentity]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	e := s.byID(id)
	if e == nil || e.Status != models.EmployeeStatusActive {
		return nil, repositories.ErrNotFound
	}
	return summaryOf(e), nil
}

// EmployeeRepository

func (s *fakeEmployeeStore) GetByCode(ctx context.Context, code string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[code]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *fakeEmployeeStore) List(ctx context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Employee{}
	for _, e := range s.employees {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeEmployeeStore) Create(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[employee.Code]; ok {
		return nil, repositories.ErrDuplicateKey
	}
	s.nextID++
	employee.ID = s.nextID
	cp := *employee
	s.employees[employee.Code] = &cp
	return employee, nil
}

func (s *fakeEmployeeStore) Deactivate(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[code]
	if !ok {
		return repositories.ErrNotFound
	}
	e.Status = models.EmployeeStatusInactive
	return nil
}

func (s *fakeEmployeeStore) UpdateLanguage(ctx context.Context, employeeID int64, lang models.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.byID(employeeID)
	if e == nil {
		return repositories.ErrNotFound
	}
	e.PreferredLanguage = lang
	return nil
}

// --- catalog ---

type fakeCatalog struct {
	routes      []models.Route
	schedules   []models.Schedule
	restaurants []models.Restaurant
}

func newFakeCatalog() *fakeCatalog {
	pingzhen := models.LocalizedText{Zh: "平鎮線", En: "Pingzhen Route", Vi: "Tuyến Pingzhen"}
	xinli := models.LocalizedText{Zh: "新壢線", En: "Xinli Route", Vi: "Tuyến Xinli"}
	return &fakeCatalog{
		routes: []models.Route{
			{ID: 1, Code: "pingzhen", Name: pingzhen, IsActive: true},
			{ID: 2, Code: "xinli", Name: xinli, IsActive: true},
		},
		schedules: []models.Schedule{
			{ID: 1, RouteID: 1, ShiftType: models.ShiftDay, DepartureTime: "17:30", Label: models.LocalizedText{Zh: "第一班", En: "1st", Vi: "Chuyến 1"}, RouteName: pingzhen, IsActive: true},
			{ID: 2, RouteID: 1, ShiftType: models.ShiftDay, DepartureTime: "19:30", Label: models.LocalizedText{Zh: "第二班", En: "2nd", Vi: "Chuyến 2"}, RouteName: pingzhen, IsActive: true},
			{ID: 3, RouteID: 1, ShiftType: models.ShiftNight, DepartureTime: "05:30", RouteName: pingzhen, IsActive: true},
			{ID: 4, RouteID: 2, ShiftType: models.ShiftDay, DepartureTime: "17:45", RouteName: xinli, IsActive: true},
		},
		restaurants: []models.Restaurant{
			{ID: 1, Floor: "3F", Name: models.LocalizedText{Zh: "便當", En: "Bento", Vi: "Cơm hộp"}, IsActive: true},
			{ID: 2, Floor: "3F", Name: models.LocalizedText{Zh: "麵食", En: "Noodles", Vi: "Mì"}, IsActive: true},
			{ID: 3, Floor: "B1", Name: models.LocalizedText{Zh: "輕食", En: "Light Meal", Vi: "Đồ ăn nhẹ"}, IsActive: true},
		},
	}
}

func (c *fakeCatalog) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return c.routes, nil
}

func (c *fakeCatalog) ListSchedules(ctx context.Context, routeID int64, shift models.ShiftType) ([]models.Schedule, error) {
	out := []models.Schedule{}
	for _, s := range c.schedules {
		if s.RouteID == routeID && s.ShiftType == shift {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *fakeCatalog) GetSchedule(ctx context.Context, scheduleID int64) (*models.Schedule, error) {
	for _, s := range c.schedules {
		if s.ID == scheduleID {
			s := s
			return &s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (c *fakeCatalog) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return c.restaurants, nil
}

func (c *fakeCatalog) GetRestaurant(ctx context.Context, restaurantID int64) (*models.Restaurant, error) {
	for _, r := range c.restaurants {
		if r.ID == restaurantID {
			r := r
			return &r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// --- ledger ---

type ledgerRow struct {
	id          int64
	kind        models.BookingKind
	employeeID  int64
	selectionID int64
	date        string
	status      models.BookingStatus
}

// fakeLedger serializes writes under one mutex, the way the advisory lock does,
// and applies cancel+insert atomically.
type fakeLedger struct {
	mu         sync.Mutex
	rows       []ledgerRow
	nextID     int64
	failInsert error
	catalog    *fakeCatalog
	employees  *fakeEmployeeStore
}

func (l *fakeLedger) Replace(ctx context.Context, kind models.BookingKind, employeeID, selectionID int64, date time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failInsert != nil {
		return 0, l.failInsert
	}
	day := date.Format(models.DateLayout)
	for i := range l.rows {
		r := &l.rows[i]
		if r.kind == kind && r.employeeID == employeeID && r.date == day && r.status == models.BookingStatusActive {
			r.status = models.BookingStatusCancelled
		}
	}
	l.nextID++
	l.rows = append(l.rows, ledgerRow{id: l.nextID, kind: kind, employeeID: employeeID, selectionID: selectionID, date: day, status: models.BookingStatusActive})
	return l.nextID, nil
}

func (l *fakeLedger) Cancel(ctx context.Context, kind models.BookingKind, employeeID int64, date time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	day := date.Format(models.DateLayout)
	var n int64
	for i := range l.rows {
		r := &l.rows[i]
		if r.kind == kind && r.employeeID == employeeID && r.date == day && r.status == models.BookingStatusActive {
			r.status = models.BookingStatusCancelled
			n++
		}
	}
	return n, nil
}

func (l *fakeLedger) summary(r ledgerRow) models.BookingSummary {
	s := models.BookingSummary{Kind: r.kind, ReferenceID: r.selectionID}
	if r.kind == models.BookingKindBus {
		sc, _ := l.catalog.GetSchedule(context.Background(), r.selectionID)
		s.Place, s.Detail, s.DepartureTime = sc.RouteName, sc.Label, sc.DepartureTime
	} else {
		rs, _ := l.catalog.GetRestaurant(context.Background(), r.selectionID)
		s.Place, s.Floor = rs.Name, rs.Floor
	}
	return s
}

func (l *fakeLedger) ListActive(ctx context.Context, employeeID int64, date time.Time) ([]models.BookingSummary, error) {
	entries, _ := l.ListRoster(ctx, date)
	out := []models.BookingSummary{}
	for _, e := range entries {
		if e.EmployeeCode == l.codeOf(employeeID) {
			out = append(out, e.BookingSummary)
		}
	}
	return out, nil
}

func (l *fakeLedger) codeOf(employeeID int64) string {
	if e := l.employees.byID(employeeID); e != nil {
		return e.Code
	}
	return ""
}

func (l *fakeLedger) ListRoster(ctx context.Context, date time.Time) ([]models.RosterEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	day := date.Format(models.DateLayout)
	out := []models.RosterEntry{}
	for _, r := range l.rows {
		if r.date != day || r.status != models.BookingStatusActive {
			continue
		}
		e := l.employees.byID(r.employeeID)
		out = append(out, models.RosterEntry{BookingSummary: l.summary(r), EmployeeCode: e.Code, EmployeeName: e.Name})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out, nil
}

func (l *fakeLedger) activeRows(kind models.BookingKind, employeeID int64, day string) []ledgerRow {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []ledgerRow
	for _, r := range l.rows {
		if r.kind == kind && r.employeeID == employeeID && r.date == day && r.status == models.BookingStatusActive {
			out = append(out, r)
		}
	}
	return out
}

func (l *fakeLedger) rowCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rows)
}

// --- settings ---

type fakeSettings struct {
	mu     sync.Mutex
	values map[string]string
}

func (s *fakeSettings) GetValues(ctx context.Context, keys []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]string{}
	for _, k := range keys {
		if v, ok := s.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *fakeSettings) Upsert(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = map[string]string{}
	}
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

func (s *fakeSettings) Delete(ctx context.Context, keys []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := s.values[k]; ok {
			delete(s.values, k)
			n++
		}
	}
	return n, nil
}

// --- fixture ---

var errStorageDown = errors.New("connection reset by peer")

type fixture struct {
	employees    *fakeEmployeeStore
	catalog      *fakeCatalog
	ledger       *fakeLedger
	settings     *fakeSettings
	clock        time.Time
	bookings     BookingService
	binding      BindingService
	conversation ConversationService
}

// newFixture wires the services over in-memory fakes. The clock starts at
// 2025-01-15 08:00 and can be moved with at().
func newFixture() *fixture {
	f := &fixture{
		employees: newFakeEmployeeStore(
			models.Employee{ID: 1, Code: "IGA1-02849", Name: "王小明", ShiftType: models.ShiftDay},
			models.Employee{ID: 2, Code: "IGA1-01657", Name: "Nguyen Van A", ShiftType: models.ShiftNight, PreferredLanguage: models.LangVi},
			models.Employee{ID: 3, Code: "IGA1-09999", Name: "Former", ShiftType: models.ShiftDay, Status: models.EmployeeStatusInactive},
		),
		catalog:  newFakeCatalog(),
		settings: &fakeSettings{},
		clock:    time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC),
	}
	f.ledger = &fakeLedger{catalog: f.catalog, employees: f.employees}
	now := func() time.Time { return f.clock }

	settingService := NewSettingService(f.settings, models.DefaultDeadlines())
	admission := NewAdmissionPolicy(settingService)
	f.binding = NewBindingService(f.employees)
	f.bookings = NewBookingService(f.ledger, f.catalog, admission)
	f.conversation = NewConversationService(
		f.binding,
		NewCatalogService(f.catalog),
		f.bookings,
		NewVerificationService(f.ledger, f.employees),
		NewEmployeeService(f.employees),
		admission,
		now,
		"https://bot.example.com/",
	)
	return f
}

func (f *fixture) at(hour, min, sec int) {
	f.clock = time.Date(2025, 1, 15, hour, min, sec, 0, time.UTC)
}

func (f *fixture) today() time.Time {
	return models.BookingDate(f.clock)
}

func (f *fixture) employee(code string) *models.EmployeeSummary {
	e, _ := f.employees.GetByCode(context.Background(), code)
	return summaryOf(e)
}
