// Hand-written mock in the style MockGen produces.
// Mocks: github.com/hibari/ubfthrift/contract (interfaces: Registry)

package contracttest

import (
	gomock "github.com/golang/mock/gomock"

	contract "github.com/hibari/ubfthrift/contract"
)

// MockRegistry is a mock of the contract.Registry interface.
type MockRegistry struct {
	ctrl     *gomock.Controller
	recorder *_MockRegistryRecorder
}

// _MockRegistryRecorder is the recorder for MockRegistry (not exported).
type _MockRegistryRecorder struct {
	mock *MockRegistry
}

// NewMockRegistry returns a new mock of contract.Registry.
func NewMockRegistry(ctrl *gomock.Controller) *MockRegistry {
	mock := &MockRegistry{ctrl: ctrl}
	mock.recorder = &_MockRegistryRecorder{mock}
	return mock
}

func (_m *MockRegistry) EXPECT() *_MockRegistryRecorder {
	return _m.recorder
}

func (_m *MockRegistry) Records() []contract.RecordKey {
	ret := _m.ctrl.Call(_m, "Records")
	ret0, _ := ret[0].([]contract.RecordKey)
	return ret0
}

func (_mr *_MockRegistryRecorder) Records() *gomock.Call {
	return _mr.mock.ctrl.RecordCall(_mr.mock, "Records")
}

func (_m *MockRegistry) RecordFields(name string, arity int) ([]string, bool) {
	ret := _m.ctrl.Call(_m, "RecordFields", name, arity)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

func (_mr *_MockRegistryRecorder) RecordFields(arg0, arg1 interface{}) *gomock.Call {
	return _mr.mock.ctrl.RecordCall(_mr.mock, "RecordFields", arg0, arg1)
}
