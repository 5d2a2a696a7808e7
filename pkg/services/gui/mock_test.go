package gui

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockDriver struct{ mock.Mock }

func (m *mockDriver) Launch(ctx context.Context, binary string, args ...string) error {
	return m.Called(ctx, binary, args).Error(0)
}

func (m *mockDriver) Terminate(ctx context.Context, processName string) error {
	return m.Called(ctx, processName).Error(0)
}

func (m *mockDriver) ListControls(ctx context.Context, window string) ([]string, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockDriver) GetText(ctx context.Context, window, control string) (string, error) {
	args := m.Called(ctx, window, control)
	return args.String(0), args.Error(1)
}

func (m *mockDriver) SetText(ctx context.Context, window, control, value string) error {
	return m.Called(ctx, window, control, value).Error(0)
}

func (m *mockDriver) Click(ctx context.Context, window, control string) error {
	return m.Called(ctx, window, control).Error(0)
}

func (m *mockDriver) SelectTab(ctx context.Context, window, tabGroup, tab string) error {
	return m.Called(ctx, window, tabGroup, tab).Error(0)
}

func (m *mockDriver) SelectComboItem(ctx context.Context, window, control, item string) error {
	return m.Called(ctx, window, control, item).Error(0)
}

func (m *mockDriver) IsChecked(ctx context.Context, window, control string) (bool, error) {
	args := m.Called(ctx, window, control)
	return args.Bool(0), args.Error(1)
}

func (m *mockDriver) Uncheck(ctx context.Context, window, control string) error {
	return m.Called(ctx, window, control).Error(0)
}

func (m *mockDriver) WindowExists(ctx context.Context, window string) (bool, error) {
	args := m.Called(ctx, window)
	return args.Bool(0), args.Error(1)
}

func (m *mockDriver) Sleep(ctx context.Context, d time.Duration) error {
	return m.Called(ctx, d).Error(0)
}
