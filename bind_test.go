package bindable_test

import (
	"runtime"
	"strconv"
	"testing"

	"github.com/go-bindable/bindable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type card struct {
	title *string
	badge *int
}

// an optional slot receives every value wrapped non-nil
func TestBindOptional(t *testing.T) {
	b := bindable.New[model]()
	c := &card{}
	bindable.BindOptional(b, count, c, func(c *card, n *int) {
		c.badge = n
	})
	assert.Nil(t, c.badge)

	b.Set(model{Count: 4})
	require.NotNil(t, c.badge)
	assert.Equal(t, 4, *c.badge)

	b.Set(model{Count: 0})
	require.NotNil(t, c.badge, "zero still arrives wrapped")
	assert.Equal(t, 0, *c.badge)
	runtime.KeepAlive(c)
}

// the transform output lands in the slot exactly, including nil
func TestBindTransform(t *testing.T) {
	b := bindable.Of(model{Name: "alpha"})
	c := &card{}
	bindable.BindTransform(b, name, c, func(c *card, s *string) {
		c.title = s
	}, func(s string) *string {
		if s == "" {
			return nil
		}
		upper := s + "!"
		return &upper
	})
	require.NotNil(t, c.title)
	assert.Equal(t, "alpha!", *c.title)

	b.Set(model{Name: ""})
	assert.Nil(t, c.title, "nil transform result clears the slot")

	b.Set(model{Name: "beta"})
	require.NotNil(t, c.title)
	assert.Equal(t, "beta!", *c.title)
	runtime.KeepAlive(c)
}

// two binds on one slot are independent subscriptions; the later
// registration wins within a pass
func TestLastBindWinsOnSharedSlot(t *testing.T) {
	b := bindable.New[model]()
	l := &label{}
	bindable.Bind(b, count, l, func(l *label, c int) {
		l.text = "first:" + strconv.Itoa(c)
	})
	bindable.Bind(b, count, l, func(l *label, c int) {
		l.text = "second:" + strconv.Itoa(c)
	})
	assert.Equal(t, 2, b.Subscribers())

	b.Set(model{Count: 8})
	assert.Equal(t, "second:8", l.text)
	runtime.KeepAlive(l)
}

// seeded counter bound through a transform into a text slot, target
// then destroyed mid-stream
func TestCounterLabelLifecycle(t *testing.T) {
	b := bindable.Of(model{Count: 3})

	text := func() *string {
		l := &label{}
		bindable.BindTransform(b, count, l, func(l *label, s *string) {
			if s != nil {
				l.text = *s
			}
		}, func(n int) *string {
			s := strconv.Itoa(n)
			return &s
		})
		require.Equal(t, "3", l.text)

		b.Set(model{Count: 5})
		require.Equal(t, "5", l.text)
		s := l.text
		return &s
	}()
	assert.Equal(t, "5", *text)

	collect()
	assert.NotPanics(t, func() {
		b.Set(model{Count: 7})
	})
	assert.Equal(t, 0, b.Subscribers())
}
