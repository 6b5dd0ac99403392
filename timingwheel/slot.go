package timingwheel

import (
	"sync"

	"github.com/lonng/pulse/timer/timerapi"
)

// entry 槽位链表节点, 挂载一个待触发的任务
type entry struct {
	task     timerapi.Task
	deadline int64 // 绝对到期时间(ns)
	slot     *slot
	prev     *entry
	next     *entry
}

// unlink 将节点从所在槽位的链表中摘除; 调用方必须持有所在槽位的锁
func (e *entry) unlink() {
	if e.slot == nil {
		return
	}
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		e.slot.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.slot = nil
	e.prev = nil
	e.next = nil
}

// 槽位
type slot struct {
	mu   sync.Mutex
	head *entry // 槽位头部的任务链表
}

// link 将节点链接到槽位的头部
func (s *slot) link(e *entry) {
	e.slot = s
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	e.prev = nil
	s.head = e
}
