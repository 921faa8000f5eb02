// Package mocks provides test doubles for the store package.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	db "github.com/sells-group/schooldata/internal/db"
	model "github.com/sells-group/schooldata/internal/model"
)

// MockStore is a mock type for the Store interface.
type MockStore struct {
	mock.Mock
}

// ListSchools provides a mock function with given fields: ctx
func (_m *MockStore) ListSchools(ctx context.Context) ([]model.School, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ListSchools")
	}

	var r0 []model.School
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]model.School, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []model.School); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.School)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetSchool provides a mock function with given fields: ctx, id
func (_m *MockStore) GetSchool(ctx context.Context, id int64) (*model.School, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetSchool")
	}

	var r0 *model.School
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) (*model.School, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64) *model.School); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.School)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SearchSchools provides a mock function with given fields: ctx, query
func (_m *MockStore) SearchSchools(ctx context.Context, query string) ([]model.School, error) {
	ret := _m.Called(ctx, query)

	if len(ret) == 0 {
		panic("no return value specified for SearchSchools")
	}

	var r0 []model.School
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]model.School, error)); ok {
		return rf(ctx, query)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.School); ok {
		r0 = rf(ctx, query)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.School)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, query)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CreateSchool provides a mock function with given fields: ctx, in
func (_m *MockStore) CreateSchool(ctx context.Context, in model.SchoolInput) (int64, error) {
	ret := _m.Called(ctx, in)

	if len(ret) == 0 {
		panic("no return value specified for CreateSchool")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.SchoolInput) (int64, error)); ok {
		return rf(ctx, in)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.SchoolInput) int64); ok {
		r0 = rf(ctx, in)
	} else {
		r0 = ret.Get(0).(int64)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.SchoolInput) error); ok {
		r1 = rf(ctx, in)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateSchool provides a mock function with given fields: ctx, id, in
func (_m *MockStore) UpdateSchool(ctx context.Context, id int64, in model.SchoolInput) error {
	ret := _m.Called(ctx, id, in)

	if len(ret) == 0 {
		panic("no return value specified for UpdateSchool")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, model.SchoolInput) error); ok {
		r0 = rf(ctx, id, in)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// DeleteSchool provides a mock function with given fields: ctx, id
func (_m *MockStore) DeleteSchool(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for DeleteSchool")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// DeleteAllSchools provides a mock function with given fields: ctx
func (_m *MockStore) DeleteAllSchools(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for DeleteAllSchools")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (int64, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) int64); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(int64)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Demographics provides a mock function with given fields: ctx
func (_m *MockStore) Demographics(ctx context.Context) ([]model.DemographicRecord, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Demographics")
	}

	var r0 []model.DemographicRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]model.DemographicRecord, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []model.DemographicRecord); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.DemographicRecord)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GraduationRates provides a mock function with given fields: ctx, aun
func (_m *MockStore) GraduationRates(ctx context.Context, aun string) ([]model.GraduationRecord, error) {
	ret := _m.Called(ctx, aun)

	if len(ret) == 0 {
		panic("no return value specified for GraduationRates")
	}

	var r0 []model.GraduationRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]model.GraduationRecord, error)); ok {
		return rf(ctx, aun)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.GraduationRecord); ok {
		r0 = rf(ctx, aun)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.GraduationRecord)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, aun)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// FinancialAnalysis provides a mock function with given fields: ctx
func (_m *MockStore) FinancialAnalysis(ctx context.Context) ([]model.FinancialRecord, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for FinancialAnalysis")
	}

	var r0 []model.FinancialRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]model.FinancialRecord, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []model.FinancialRecord); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.FinancialRecord)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SchoolPerformance provides a mock function with given fields: ctx
func (_m *MockStore) SchoolPerformance(ctx context.Context) ([]model.PerformanceRecord, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for SchoolPerformance")
	}

	var r0 []model.PerformanceRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]model.PerformanceRecord, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []model.PerformanceRecord); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.PerformanceRecord)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SearchDirectory provides a mock function with given fields: ctx, term, sort
func (_m *MockStore) SearchDirectory(ctx context.Context, term string, sort model.SortKey) ([]model.DirectoryResult, error) {
	ret := _m.Called(ctx, term, sort)

	if len(ret) == 0 {
		panic("no return value specified for SearchDirectory")
	}

	var r0 []model.DirectoryResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, model.SortKey) ([]model.DirectoryResult, error)); ok {
		return rf(ctx, term, sort)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, model.SortKey) []model.DirectoryResult); ok {
		r0 = rf(ctx, term, sort)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.DirectoryResult)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, model.SortKey) error); ok {
		r1 = rf(ctx, term, sort)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ImportTable provides a mock function with given fields: ctx, spec, rows
func (_m *MockStore) ImportTable(ctx context.Context, spec db.TableSpec, rows [][]any) (int64, error) {
	ret := _m.Called(ctx, spec, rows)

	if len(ret) == 0 {
		panic("no return value specified for ImportTable")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, db.TableSpec, [][]any) (int64, error)); ok {
		return rf(ctx, spec, rows)
	}
	if rf, ok := ret.Get(0).(func(context.Context, db.TableSpec, [][]any) int64); ok {
		r0 = rf(ctx, spec, rows)
	} else {
		r0 = ret.Get(0).(int64)
	}

	if rf, ok := ret.Get(1).(func(context.Context, db.TableSpec, [][]any) error); ok {
		r1 = rf(ctx, spec, rows)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Migrate provides a mock function with given fields: ctx
func (_m *MockStore) Migrate(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Migrate")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Ping provides a mock function with given fields: ctx
func (_m *MockStore) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Ping")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Close provides a mock function with no fields
func (_m *MockStore) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockStore creates a new instance of MockStore.
func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStore {
	mock := &MockStore{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
