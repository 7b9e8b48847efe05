package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jaguar8340/crm-KS/internal/model"
	"github.com/jaguar8340/crm-KS/internal/repository"
)

// In-memory fakes standing in for the Mongo repositories. Maps keyed by
// generated id; slices keep insertion order where ordering matters.

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	for _, ex := range f.users {
		if ex.Username == u.Username {
			return repository.ErrUsernameTaken
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeCustomerStore struct {
	customers map[string]*model.Customer
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{customers: map[string]*model.Customer{}}
}

func (f *fakeCustomerStore) Create(_ context.Context, cu *model.Customer) error {
	cp := *cu
	f.customers[cu.ID] = &cp
	return nil
}

func (f *fakeCustomerStore) List(_ context.Context) ([]model.Customer, error) {
	out := []model.Customer{}
	for _, cu := range f.customers {
		out = append(out, *cu)
	}
	return out, nil
}

func (f *fakeCustomerStore) GetByID(_ context.Context, id string) (*model.Customer, error) {
	cu, ok := f.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cu, nil
}

func (f *fakeCustomerStore) GetByKundenNr(_ context.Context, kundenNr string) (*model.Customer, error) {
	for _, cu := range f.customers {
		if cu.KundenNr == kundenNr {
			return cu, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCustomerStore) Update(_ context.Context, id string, in model.CustomerInput) (*model.Customer, error) {
	cu, ok := f.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cu.CustomerInput = in
	return cu, nil
}

func (f *fakeCustomerStore) Delete(_ context.Context, id string) error {
	if _, ok := f.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerStore) AppendRemark(_ context.Context, id string, r model.Remark) error {
	cu, ok := f.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	cu.Bemerkungen = append(cu.Bemerkungen, r)
	return nil
}

func (f *fakeCustomerStore) AppendCorrespondence(_ context.Context, id string, e model.Correspondence) error {
	cu, ok := f.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	cu.Korrespondenz = append(cu.Korrespondenz, e)
	return nil
}

type fakeVehicleStore struct {
	vehicles map[string]*model.Vehicle
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{vehicles: map[string]*model.Vehicle{}}
}

func (f *fakeVehicleStore) Create(_ context.Context, v *model.Vehicle) error {
	cp := *v
	f.vehicles[v.ID] = &cp
	return nil
}

func (f *fakeVehicleStore) List(_ context.Context, customerID string) ([]model.Vehicle, error) {
	out := []model.Vehicle{}
	for _, v := range f.vehicles {
		if customerID == "" || v.CustomerID == customerID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVehicleStore) GetByID(_ context.Context, id string) (*model.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (f *fakeVehicleStore) Update(_ context.Context, id string, in model.VehicleInput) (*model.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v.VehicleInput = in
	return v, nil
}

func (f *fakeVehicleStore) Delete(_ context.Context, id string) error {
	if _, ok := f.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.vehicles, id)
	return nil
}

func (f *fakeVehicleStore) DeleteByCustomer(_ context.Context, customerID string) (int64, error) {
	var n int64
	for id, v := range f.vehicles {
		if v.CustomerID == customerID {
			delete(f.vehicles, id)
			n++
		}
	}
	return n, nil
}

type fakeEmployeeStore struct {
	employees map[string]*model.Employee
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{employees: map[string]*model.Employee{}}
}

func (f *fakeEmployeeStore) Create(_ context.Context, e *model.Employee) error {
	cp := *e
	f.employees[e.ID] = &cp
	return nil
}

func (f *fakeEmployeeStore) List(_ context.Context) ([]model.Employee, error) {
	out := []model.Employee{}
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEmployeeStore) GetByID(_ context.Context, id string) (*model.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

func (f *fakeEmployeeStore) Update(_ context.Context, id string, in model.EmployeeInput) (*model.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.EmployeeInput = in
	return e, nil
}

func (f *fakeEmployeeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.employees, id)
	return nil
}

type fakeTaskStore struct {
	tasks map[string]*model.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[string]*model.Task{}}
}

func (f *fakeTaskStore) Create(_ context.Context, t *model.Task) error {
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskStore) List(_ context.Context, assignedTo string) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range f.tasks {
		if assignedTo == "" || t.AssignedTo == assignedTo {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id string) (*model.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTaskStore) Update(_ context.Context, id string, in model.TaskInput) (*model.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.TaskInput = in
	return t, nil
}

func (f *fakeTaskStore) UpdateStatus(_ context.Context, id string, status model.Status) error {
	t, ok := f.tasks[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Status = status
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

type fakeExperienceStore struct {
	cases map[string]*model.ClientExperience
}

func newFakeExperienceStore() *fakeExperienceStore {
	return &fakeExperienceStore{cases: map[string]*model.ClientExperience{}}
}

func (f *fakeExperienceStore) Create(_ context.Context, ce *model.ClientExperience) error {
	cp := *ce
	f.cases[ce.ID] = &cp
	return nil
}

func (f *fakeExperienceStore) List(_ context.Context) ([]model.ClientExperience, error) {
	out := []model.ClientExperience{}
	for _, ce := range f.cases {
		out = append(out, *ce)
	}
	return out, nil
}

func (f *fakeExperienceStore) GetByID(_ context.Context, id string) (*model.ClientExperience, error) {
	ce, ok := f.cases[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return ce, nil
}

func (f *fakeExperienceStore) Update(_ context.Context, id string, in model.ClientExperienceInput) (*model.ClientExperience, error) {
	ce, ok := f.cases[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	ce.ClientExperienceInput = in
	return ce, nil
}

func (f *fakeExperienceStore) AppendSolution(_ context.Context, id string, s model.Solution) error {
	ce, ok := f.cases[id]
	if !ok {
		return repository.ErrNotFound
	}
	ce.Loesungen = append(ce.Loesungen, s)
	return nil
}

func (f *fakeExperienceStore) UpdateStatus(_ context.Context, id string, status model.Status) error {
	ce, ok := f.cases[id]
	if !ok {
		return repository.ErrNotFound
	}
	ce.Status = status
	return nil
}

func (f *fakeExperienceStore) Delete(_ context.Context, id string) error {
	if _, ok := f.cases[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.cases, id)
	return nil
}

// testActor is the authenticated user stamped onto test contexts.
var testActor = &model.User{
	ID:        "actor-1",
	Username:  "hmuster",
	Name:      "Hans Muster",
	Role:      model.RoleAdmin,
	CreatedAt: time.Now().UTC(),
}

// newTestContext builds an echo context carrying a JSON body and the test
// actor, the way requests arrive after the auth gate has run.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", testActor)
	return c, rec
}
