package runner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeMachine struct {
	steps       uint64
	ticks       int
	drawEvery   uint64
	failAt      uint64
	haltAt      uint64
	drawPending bool
	keyLog      []string
}

var errFault = errors.New("fault")

func (m *fakeMachine) Step() error {
	if m.failAt != 0 && m.steps == m.failAt {
		return errFault
	}
	m.steps++
	if m.drawEvery != 0 && m.steps%m.drawEvery == 0 {
		m.drawPending = true
	}
	return nil
}

func (m *fakeMachine) Tick() { m.ticks++ }

func (m *fakeMachine) Press(key uint8) {
	m.keyLog = append(m.keyLog, fmt.Sprintf("%d:+%X", m.steps, key))
}

func (m *fakeMachine) Release(key uint8) {
	m.keyLog = append(m.keyLog, fmt.Sprintf("%d:-%X", m.steps, key))
}

func (m *fakeMachine) DrawPending() bool { return m.drawPending }
func (m *fakeMachine) ClearDrawPending() { m.drawPending = false }
func (m *fakeMachine) State() string     { return "state" }

func (m *fakeMachine) Halted() bool {
	return m.haltAt != 0 && m.steps >= m.haltAt
}

func TestRun_MaxCycles(t *testing.T) {
	m := &fakeMachine{}
	r := New(log.NewTestLogger(t), m, nil, Config{
		CycleInterval: time.Millisecond,
		TimerInterval: 4 * time.Millisecond,
		MaxCycles:     100,
		Unpaced:       true,
	})

	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint64(100), result.Cycles)
	assert.Equal(t, uint64(25), result.Ticks)
	assert.Equal(t, uint64(100), m.steps)
	assert.Equal(t, 25, m.ticks)
}

func TestRun_TimerDisabled(t *testing.T) {
	m := &fakeMachine{}
	r := New(log.NewTestLogger(t), m, nil, Config{
		MaxCycles: 50,
		Unpaced:   true,
	})

	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), result.Ticks)
	assert.Equal(t, 0, m.ticks)
}

func TestRun_DefaultPacing(t *testing.T) {
	m := &fakeMachine{}
	r := New(log.NewTestLogger(t), m, nil, Config{
		TimerInterval: DefaultTimerInterval,
		MaxCycles:     100,
		Unpaced:       true,
	})

	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	// 100 cycles of 2ms are 200ms, which holds 12 full ticks of 1/60s
	assert.Equal(t, uint64(12), result.Ticks)
}

func TestRun_Paced(t *testing.T) {
	m := &fakeMachine{}
	r := New(log.NewTestLogger(t), m, nil, Config{
		CycleInterval: time.Millisecond,
		MaxCycles:     5,
	})

	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), result.Cycles)
}

func TestRun_KeyEvents(t *testing.T) {
	keys, err := ParseKeyScript("3:+5,0:+1,3:-1,7:-5")
	assert.NoError(t, err)

	m := &fakeMachine{}
	r := New(log.NewTestLogger(t), m, nil, Config{
		MaxCycles: 10,
		Unpaced:   true,
		Keys:      keys,
	})

	_, err = r.Run(context.Background())
	assert.NoError(t, err)

	expected := []string{"0:+1", "3:+5", "3:-1", "7:-5"}
	assert.Len(t, m.keyLog, len(expected))
	for i, entry := range expected {
		assert.Equal(t, entry, m.keyLog[i])
	}
}

func TestRun_KeyEventsAfterBudget(t *testing.T) {
	m := &fakeMachine{}
	r := New(log.NewTestLogger(t), m, nil, Config{
		MaxCycles: 5,
		Unpaced:   true,
		Keys:      []KeyEvent{{Cycle: 10, Key: 1, Pressed: true}},
	})

	_, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, m.keyLog)
}

func TestRun_RenderEveryFrame(t *testing.T) {
	m := &fakeMachine{drawEvery: 3}
	renders := 0
	render := func() error {
		assert.True(t, m.DrawPending())
		renders++
		return nil
	}

	r := New(log.NewTestLogger(t), m, render, Config{
		MaxCycles:  10,
		Unpaced:    true,
		EveryFrame: true,
	})

	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, renders)
	assert.Equal(t, uint64(3), result.Frames)
	assert.False(t, m.DrawPending())
}

func TestRun_RenderDisabled(t *testing.T) {
	m := &fakeMachine{drawEvery: 1}
	r := New(log.NewTestLogger(t), m, nil, Config{
		MaxCycles: 4,
		Unpaced:   true,
	})

	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), result.Frames)
	assert.True(t, m.DrawPending())
}

func TestRun_RenderError(t *testing.T) {
	m := &fakeMachine{drawEvery: 2}
	render := func() error { return errors.New("closed pipe") }

	r := New(log.NewTestLogger(t), m, render, Config{
		MaxCycles:  10,
		Unpaced:    true,
		EveryFrame: true,
	})

	result, err := r.Run(context.Background())
	assert.ErrorContains(t, err, "closed pipe")
	assert.Equal(t, uint64(2), result.Cycles)
}

func TestRun_Fault(t *testing.T) {
	m := &fakeMachine{failAt: 6}
	r := New(log.NewTestLogger(t), m, nil, Config{
		Unpaced: true,
	})

	result, err := r.Run(context.Background())
	assert.True(t, errors.Is(err, errFault))
	assert.ErrorContains(t, err, "executing cycle 6")
	assert.Equal(t, uint64(6), result.Cycles)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	t.Run("unpaced", func(t *testing.T) {
		m := &fakeMachine{}
		r := New(log.NewTestLogger(t), m, nil, Config{Unpaced: true})

		result, err := r.Run(ctx)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, uint64(0), result.Cycles)
	})

	t.Run("paced", func(t *testing.T) {
		m := &fakeMachine{}
		r := New(log.NewTestLogger(t), m, nil, Config{CycleInterval: time.Hour})

		result, err := r.Run(ctx)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, uint64(0), result.Cycles)
	})
}

func TestRun_Halted(t *testing.T) {
	m := &fakeMachine{haltAt: 7}
	r := New(log.NewTestLogger(t), m, nil, Config{
		Unpaced: true,
	})

	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.True(t, result.Halted)
	assert.Equal(t, uint64(7), result.Cycles)
	assert.Equal(t, uint64(7), m.steps)
}

func TestRun_NotHaltedAtBudget(t *testing.T) {
	m := &fakeMachine{haltAt: 20}
	r := New(log.NewTestLogger(t), m, nil, Config{
		MaxCycles: 10,
		Unpaced:   true,
	})

	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.False(t, result.Halted)
	assert.Equal(t, uint64(10), result.Cycles)
}
