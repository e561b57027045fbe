package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bronzestone/internal/content"
)

func TestHooks_FireOrder(t *testing.T) {
	t.Parallel()

	var h Hooks
	var calls []string
	require.NoError(t, h.Register("a", "first", func(label string) { calls = append(calls, "a1:"+label) }))
	require.NoError(t, h.Register("b", "second", func(label string) { calls = append(calls, "b1:"+label) }))
	require.NoError(t, h.Register("a", "third", func(label string) { calls = append(calls, "a2:"+label) }))

	h.Fire("load")
	assert.Equal(t, []string{"a1:load", "b1:load", "a2:load"}, calls)
}

func TestHooks_Register_Invalid(t *testing.T) {
	t.Parallel()

	var h Hooks
	assert.Error(t, h.Register("", "x", func(string) {}))
	assert.Error(t, h.Register("owner", "x", nil))
	assert.Equal(t, 0, h.Len())
}

func TestHooks_UnregisterAll(t *testing.T) {
	t.Parallel()

	var h Hooks
	var calls []string
	require.NoError(t, h.Register("a", "x", func(string) { calls = append(calls, "a") }))
	require.NoError(t, h.Register("b", "y", func(string) { calls = append(calls, "b") }))
	require.NoError(t, h.Register("a", "z", func(string) { calls = append(calls, "a") }))

	assert.Equal(t, 2, h.UnregisterAll("a"))
	assert.Equal(t, 0, h.UnregisterAll("a"))
	assert.Equal(t, 1, h.Len())

	h.Fire("load")
	assert.Equal(t, []string{"b"}, calls)
}

func TestHooks_PanicDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	var h Hooks
	ran := false
	require.NoError(t, h.Register("bad", "boom", func(string) { panic("boom") }))
	require.NoError(t, h.Register("good", "ok", func(string) { ran = true }))

	assert.NotPanics(t, func() { h.Fire("load") })
	assert.True(t, ran)
}

func TestRuntime_CopyOtherDB(t *testing.T) {
	t.Parallel()

	src, err := content.Vanilla().Build()
	require.NoError(t, err)

	rt := NewRuntime("0.217.46")
	assert.Nil(t, rt.Instance())
	assert.Equal(t, "0.217.46", rt.Version())

	var seen []*content.Registry
	require.NoError(t, rt.Hooks().Register("test", "capture", func(label string) {
		assert.Equal(t, LabelCopyOtherDB, label)
		seen = append(seen, rt.Instance())
	}))

	rt.CopyOtherDB(src, LabelCopyOtherDB)
	rt.CopyOtherDB(src, LabelCopyOtherDB)

	require.Len(t, seen, 2)
	assert.NotSame(t, src, seen[0])
	assert.NotSame(t, seen[0], seen[1])
	assert.Equal(t, uint64(1), seen[0].Generation())
	assert.Equal(t, uint64(2), seen[1].Generation())
	assert.Equal(t, src.Digest(), seen[1].Digest())

	rt.Reset()
	assert.Nil(t, rt.Instance())
}
