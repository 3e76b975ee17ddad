package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/drift/cmd/drift/commands"
	"go.trai.ch/drift/internal/app"
	"go.trai.ch/drift/internal/build"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type mockApp struct {
	checkFunc func(ctx context.Context, opts app.CheckOptions) error
	cleaned   bool
}

func (m *mockApp) Check(ctx context.Context, opts app.CheckOptions) error {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(_ context.Context) error {
	m.cleaned = true
	return nil
}

type recordingLogger struct {
	*mocks.MockLogger
	verbose, json bool
}

func (l *recordingLogger) SetVerbose(v bool) { l.verbose = v }
func (l *recordingLogger) SetJSON(v bool)    { l.json = v }

func TestCommands_Check(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.CheckOptions
		mock := &mockApp{
			checkFunc: func(_ context.Context, opts app.CheckOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"check", "--no-cache", "--fail-on-outdated", "-p", "3", "--color", "never"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.CheckOptions{
			NoCache:        true,
			FailOnOutdated: true,
			Parallelism:    3,
			Color:          "never",
		}, captured)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured app.CheckOptions
		mock := &mockApp{
			checkFunc: func(_ context.Context, opts app.CheckOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"check"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.CheckOptions{Color: "auto"}, captured)
	})

	t.Run("rejects negative parallelism", func(t *testing.T) {
		cli := commands.New(&mockApp{
			checkFunc: func(context.Context, app.CheckOptions) error {
				panic("should not be called")
			},
		}, nil)
		cli.SetArgs([]string{"check", "--parallelism=-1"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrInvalidParallelism.Error())
	})

	t.Run("returns error on check failure", func(t *testing.T) {
		mock := &mockApp{
			checkFunc: func(context.Context, app.CheckOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"check"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_LoggerFlags(t *testing.T) {
	log := &recordingLogger{MockLogger: mocks.NewMockLogger(gomock.NewController(t))}

	cli := commands.New(&mockApp{}, log)
	cli.SetArgs([]string{"check", "--verbose", "--json-log"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, log.verbose)
	assert.True(t, log.json)
}

func TestCommands_Clean(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock, nil)
	cli.SetArgs([]string{"clean"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, mock.cleaned)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{}, nil)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "drift version "+build.Version)
}
