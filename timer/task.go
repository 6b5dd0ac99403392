package timer

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lonng/pulse/timer/timerapi"
)

// globalID 进程级 ID 计数器, 单调递增, 从不复用; Timer 和它创建的任务共用同一个 ID
var globalID atomic.Uint64

// nextID 生成下一个全局唯一 ID
func nextID() uint64 {
	return globalID.Add(1)
}

// task 实现 timerapi.Task
var _ timerapi.Task = (*task)(nil)

// task 一次定时器运行的调度状态
type task struct {
	id                   uint64     // 全局唯一 ID, 与创建它的 Timer 相同
	intervalMS           int64      // 设定周期(ms), 创建后不再变化, 恒大于 0
	nextFireMS           int64      // 下一次触发的偏移(ms), 以重新提交时刻为起点, 恒不小于 WheelResolutionMS
	lastExecuteNano      int64      // 上一次触发开始的单调时间戳(ns), 0 表示尚未触发过
	accumulatedErrorNano int64      // 实际间隔与设定间隔的带符号累积误差(ns), 可为负
	mu                   sync.Mutex // 执行锁, 正在执行回调或正在销毁时持有
	run                  func()     // 包装后的回调
}

// newTask 构造任务; 周期校验由 TimerOption.validate 负责
func newTask(id uint64, intervalMS int64) *task {
	return &task{
		id:         id,
		intervalMS: intervalMS,
		nextFireMS: intervalMS,
	}
}

// ID 返回任务的全局唯一 ID
func (t *task) ID() uint64 {
	return t.id
}

// NextFireDuration 返回从提交时刻起, 到下一次触发的等待时长
func (t *task) NextFireDuration() time.Duration {
	return time.Duration(t.nextFireMS) * time.Millisecond
}

// Run 执行包装后的回调
func (t *task) Run() {
	t.run()
}

// compensate 一次触发结束后更新累积误差并计算下一次触发偏移, 必须持有 mu 调用.
// start/end 是本次触发的起止单调纳秒时间戳.
func (t *task) compensate(start, end int64) {
	execMS := llround(end - start)

	// 首次触发没有上一个间隔可测量
	if t.lastExecuteNano != 0 {
		// 累积实际间隔与设定间隔的带符号偏差, 一个方向的误差
		// 会被后续触发中相反方向的修正抵消, 长期漂移趋于 0
		t.accumulatedErrorNano += start - t.lastExecuteNano - t.intervalMS*int64(time.Millisecond)
	}
	t.lastExecuteNano = start

	// 回调自身耗尽了整个周期, 下一个 tick 马上触发; 此分支不回补累积误差
	if execMS >= t.intervalMS {
		t.nextFireMS = timerapi.WheelResolutionMS
		return
	}

	// 下一次偏移以重新提交时刻(回调结束后)为起点, 因此从设定周期中
	// 同时扣掉本次执行耗时和累积误差; 扣完已短于调度粒度时退回一个 tick
	errMS := llround(t.accumulatedErrorNano)
	if t.intervalMS-execMS-timerapi.WheelResolutionMS >= errMS {
		t.nextFireMS = t.intervalMS - execMS - errMS
	} else {
		t.nextFireMS = timerapi.WheelResolutionMS
	}
}

// llround 纳秒到毫秒的四舍五入
func llround(ns int64) int64 {
	return int64(math.Round(float64(ns) / 1e6))
}

//====

// taskRef 任务的可解析引用单元. 包装回调只捕获 taskRef 而不捕获任务或句柄,
// Stop 在持有执行锁的情况下清空引用之后, 仍在调度队列中的触发会解析失败并静默返回.
type taskRef struct {
	p atomic.Pointer[task]
}

// resolve 解析当前任务, 引用已被释放时返回 nil
func (r *taskRef) resolve() *task {
	return r.p.Load()
}

//====

// oneshotFunc 构造单次任务的包装回调: 只做存活检查并执行用户回调, 从不重新提交
func oneshotFunc(ref *taskRef, callback func()) func() {
	return func() {
		t := ref.resolve()
		if t == nil {
			return
		}
		t.mu.Lock()
		defer t.mu.Unlock()
		// 等锁期间被 Stop, 引用已经易主
		if ref.resolve() != t {
			return
		}
		callback()
	}
}

// periodicFunc 构造周期任务的包装回调: 持有执行锁执行用户回调, 测量耗时,
// 误差补偿后把任务重新提交给调度器. 补偿与重新提交放在 defer 中执行,
// 用户回调 panic 时仍然会计算下一次偏移并提交, panic 本身继续向调度器的工作协程传播.
func periodicFunc(ref *taskRef, callback func(), sched timerapi.TaskScheduler, clock timerapi.MonotonicClock) func() {
	return func() {
		t := ref.resolve()
		if t == nil {
			return
		}
		t.mu.Lock()
		defer t.mu.Unlock()
		if ref.resolve() != t {
			return
		}
		start := clock.NowNano()
		defer func() {
			t.compensate(start, clock.NowNano())
			sched.Submit(t)
		}()
		callback()
	}
}
