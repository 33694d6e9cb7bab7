package app

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-dashboard/internal/config"
)

func TestCloseAggregatesErrors(t *testing.T) {
	var order []string
	a := &App{
		Config: &config.Config{},
		Logger: zap.NewNop(),
		closers: []func() error{
			func() error { order = append(order, "first"); return errors.New("first close failed") },
			func() error { order = append(order, "second"); return nil },
			func() error { order = append(order, "third"); return errors.New("third close failed") },
		},
	}

	err := a.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first close failed")
	assert.Contains(t, err.Error(), "third close failed")
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestCloseWithoutErrors(t *testing.T) {
	a := &App{closers: []func() error{func() error { return nil }}}
	assert.NoError(t, a.Close())
}
