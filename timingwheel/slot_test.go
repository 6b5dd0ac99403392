package timingwheel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// collect 按链表顺序收集槽位里的节点
func collect(s *slot) []*entry {
	var out []*entry
	for e := s.head; e != nil; e = e.next {
		out = append(out, e)
	}
	return out
}

// TestSlot_LinkUnlink 测试槽位链表的挂载与摘除
func TestSlot_LinkUnlink(t *testing.T) {
	t.Run("Link Prepends", func(t *testing.T) {
		s := &slot{}
		a, b, c := &entry{}, &entry{}, &entry{}
		s.link(a)
		s.link(b)
		s.link(c)

		assert.Equal(t, []*entry{c, b, a}, collect(s))
		assert.Same(t, s, a.slot)
		assert.Same(t, s, c.slot)
	})

	t.Run("Unlink Head", func(t *testing.T) {
		s := &slot{}
		a, b := &entry{}, &entry{}
		s.link(a)
		s.link(b)

		b.unlink()
		assert.Equal(t, []*entry{a}, collect(s))
		assert.Nil(t, b.slot)
		assert.Nil(t, b.next)
		assert.Nil(t, b.prev)
	})

	t.Run("Unlink Middle", func(t *testing.T) {
		s := &slot{}
		a, b, c := &entry{}, &entry{}, &entry{}
		s.link(a)
		s.link(b)
		s.link(c)

		b.unlink()
		assert.Equal(t, []*entry{c, a}, collect(s))
	})

	t.Run("Unlink Tail", func(t *testing.T) {
		s := &slot{}
		a, b := &entry{}, &entry{}
		s.link(a)
		s.link(b)

		a.unlink()
		assert.Equal(t, []*entry{b}, collect(s))
	})

	t.Run("Unlink Detached Is Noop", func(t *testing.T) {
		e := &entry{}
		e.unlink()
		assert.Nil(t, e.slot)
	})

	t.Run("Relink After Unlink", func(t *testing.T) {
		s1, s2 := &slot{}, &slot{}
		e := &entry{}
		s1.link(e)
		e.unlink()
		s2.link(e)

		assert.Nil(t, s1.head)
		assert.Equal(t, []*entry{e}, collect(s2))
	})
}
