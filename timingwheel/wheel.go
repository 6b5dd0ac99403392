package timingwheel

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/timandy/routine"

	"github.com/lonng/pulse/internal/env"
	"github.com/lonng/pulse/internal/log"
	"github.com/lonng/pulse/timer/timerapi"
)

// Wheel 实现 timerapi.Scheduler
var _ timerapi.Scheduler = (*Wheel)(nil)

// Wheel 单层时间轮调度器. 主循环按 tick 推进槽位指针, 到期任务交给
// 工作协程池执行; 延迟超过一圈的任务在每次经过时按剩余时间重新挂槽.
type Wheel struct {
	name      string             // 时间轮名称
	tick      time.Duration      // 槽位推进间隔, 即调度粒度
	slotMask  int64              // 槽位数量掩码, 用于快速计算槽位索引, slotNum(2^n) - 1
	slots     []*slot            // 槽位数组
	current   int64              // 槽位指针
	currentMu sync.Mutex         // 槽位指针锁
	state     atomic.Int32       // 时间轮状态
	chDie     chan struct{}      // 关闭信号通道
	chTasks   chan timerapi.Task // 到期任务队列, 由工作协程消费
	workerNum int                // 工作协程数
}

// NewWheel 构造一个新的时间轮, 需要调用 Start 方法来启动.
// slotNum 向上取整到 2 的幂; workerNum 不大于 0 时取 env.WheelWorkerNum.
func NewWheel(name string, tick time.Duration, slotNum, workerNum int) *Wheel {
	if tick <= 0 {
		panic("pulse/timingwheel: tick must > 0")
	}
	if slotNum <= 0 {
		panic("pulse/timingwheel: slotNum must > 0")
	}
	if workerNum <= 0 {
		workerNum = env.WheelWorkerNum
	}
	n := ceilPow2(slotNum)
	slots := make([]*slot, n)
	for i := range slots {
		slots[i] = &slot{}
	}
	return &Wheel{
		name:      name,
		tick:      tick,
		slotMask:  int64(n - 1),
		slots:     slots,
		chDie:     make(chan struct{}),
		chTasks:   make(chan timerapi.Task, 1<<8),
		workerNum: workerNum,
	}
}

// ceilPow2 向上取整到 2 的幂
func ceilPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Start 启动时间轮
func (w *Wheel) Start() {
	if !w.state.CompareAndSwap(timerapi.ExecutorStateCreated, timerapi.ExecutorStateRunning) {
		return
	}

	// 工作协程池 + 主循环
	for i := 0; i < w.workerNum; i++ {
		go w.worker()
	}
	go w.run()
}

// Close 关闭时间轮, 丢弃所有未触发的任务
func (w *Wheel) Close() {
	if !w.state.CompareAndSwap(timerapi.ExecutorStateRunning, timerapi.ExecutorStateClosed) {
		return
	}
	close(w.chDie)
}

// State 返回时间轮的当前状态
func (w *Wheel) State() timerapi.ExecutorState {
	return w.state.Load()
}

// Submit 提交一个任务, 在任务的 NextFireDuration 之后触发一次.
// 短于一个 tick 的延迟会被抬升到一个 tick; 时间轮关闭后返回 false.
func (w *Wheel) Submit(task timerapi.Task) bool {
	if task == nil {
		return false
	}
	if w.state.Load() == timerapi.ExecutorStateClosed {
		if env.Debug {
			log.Info("Pulse wheel [%v] already closed, task-%v is not accepted.", w.name, task.ID())
		}
		return false
	}

	delay := task.NextFireDuration()
	if delay < w.tick {
		delay = w.tick
	}
	w.place(&entry{task: task, deadline: time.Now().UnixNano() + int64(delay)}, delay)
	return true
}

// place 根据延迟将节点放入目标槽位; 调用方必须持有节点所在槽位的锁, 或节点不属于任何槽位
func (w *Wheel) place(e *entry, delay time.Duration) {
	// 取消原有挂载
	orig := e.slot
	e.unlink()

	// 计算剩余槽位
	remain := int64(delay) / int64(w.tick)
	if remain <= 0 {
		remain = 1
	}

	// 计算槽位下标
	w.currentMu.Lock()
	idx := (w.current + remain) & w.slotMask
	w.currentMu.Unlock()
	slt := w.slots[idx]

	// 锁住目标槽位; 目标槽位不是原槽位时才加锁, 防止死锁
	if slt != orig {
		slt.mu.Lock()
		defer slt.mu.Unlock()
	}
	slt.link(e)
}

// next 返回当前槽位, 并推进指针到下一个槽位
func (w *Wheel) next() *slot {
	w.currentMu.Lock()
	defer w.currentMu.Unlock()

	idx := w.current
	w.current = (w.current + 1) & w.slotMask
	return w.slots[idx]
}

// advance 推进指针并分发到期任务
func (w *Wheel) advance() {
	slt := w.next()

	slt.mu.Lock()
	defer slt.mu.Unlock()

	head := slt.head
	if head == nil {
		return
	}

	now := time.Now().UnixNano()
	var next *entry
	for e := head; e != nil; e = next {
		// 提前保存 next, 防止 e 被 unlink 后丢失
		next = e.next

		// 到期, 摘除并分发
		if e.deadline <= now {
			e.unlink()
			w.dispatch(e.task)
			continue
		}

		// 未到期(延迟超过一圈), 按剩余时间重新挂槽
		w.place(e, time.Duration(e.deadline-now))
	}
}

// dispatch 将到期任务交给工作协程
func (w *Wheel) dispatch(task timerapi.Task) {
	select {
	case w.chTasks <- task:
	case <-w.chDie:
	}
}

// runTask 执行一个到期任务, 捕获 panic
func (w *Wheel) runTask(task timerapi.Task) {
	defer func() {
		if err := recover(); err != nil {
			log.Error("Pulse wheel [%v] execute task-%v error: %v", w.name, task.ID(), routine.NewRuntimeError(err))
		}
	}()
	task.Run()
}

// worker 工作协程循环, 执行到期任务的包装回调
func (w *Wheel) worker() {
	for {
		select {
		case task := <-w.chTasks:
			w.runTask(task)

		case <-w.chDie:
			return
		}
	}
}

// run 时间轮主循环
func (w *Wheel) run() {
	if env.Debug {
		log.Info("Pulse wheel [%v] starting.", w.name)
	}

	ticker := time.NewTicker(w.tick)
	defer func() {
		ticker.Stop()
		w.clear()
		if env.Debug {
			log.Info("Pulse wheel [%v] closed.", w.name)
		}
	}()

	for {
		select {
		case <-ticker.C:
			w.advance()

		case <-w.chDie:
			return
		}
	}
}

// clear 清空所有槽位
func (w *Wheel) clear() {
	w.currentMu.Lock()
	defer w.currentMu.Unlock()

	for i := range w.slots {
		w.slots[i] = &slot{}
	}
	w.current = 0
}
