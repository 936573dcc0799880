package doctor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCheck is a testify mock of Check.
type MockCheck struct {
	mock.Mock
}

func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCheck) Name() string {
	return m.Called().String(0)
}

func (m *MockCheck) Category() string {
	return m.Called().String(0)
}

func (m *MockCheck) Run(ctx context.Context) *CheckResult {
	ret := m.Called(ctx)
	result, _ := ret.Get(0).(*CheckResult)
	return result
}

// fixingCheck is a MockCheck that also implements Fixer.
type fixingCheck struct {
	*MockCheck
	canFix bool
	fixed  int
}

func (f *fixingCheck) CanFix() bool { return f.canFix }

func (f *fixingCheck) Fix() []FixResult {
	f.fixed++
	return []FixResult{{Path: "p", Fixed: true, Description: "fixed"}}
}
