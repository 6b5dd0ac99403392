package timer

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/lonng/pulse/internal/env"
	"github.com/lonng/pulse/internal/log"
	"github.com/lonng/pulse/timer/timerapi"
)

// Timer 生命周期状态常量
const (
	// stateIdle 初始状态, 尚未启动
	stateIdle int32 = 0
	// stateRunning 已启动, 任务在调度器和包装回调之间轮转
	stateRunning int32 = 1
	// stateStopped 终态, 停止后的 Timer 不能重新启动
	stateStopped int32 = 2
)

// systemClock 所有 Timer 共享的默认单调时钟
var systemClock = timerapi.NewSystemClock()

// envGate 默认模式门控, 读取进程级的实时模式开关
var envGate = timerapi.GateFunc(func() bool { return env.Realtime })

// Option Timer 的可选配置函数
type Option func(*Timer)

// WithClock 替换默认单调时钟, 用于确定性测试
func WithClock(clock timerapi.MonotonicClock) Option {
	return func(t *Timer) {
		t.clock = clock
	}
}

// WithModeGate 替换默认模式门控
func WithModeGate(gate timerapi.ModeGate) Option {
	return func(t *Timer) {
		t.gate = gate
	}
}

// Timer 用户侧定时器句柄. Start 时构造任务并提交给调度器, 此后任务的拥有引用
// 在句柄与调度器待触发队列之间轮转; Stop 在执行锁保护下释放句柄的引用,
// 保证正在执行的回调先结束, 之后的触发再也解析不到任务.
// Start 和 Stop 可以在任意协程并发调用.
type Timer struct {
	id    uint64
	opt   TimerOption
	sched timerapi.TaskScheduler
	clock timerapi.MonotonicClock
	gate  timerapi.ModeGate
	state atomic.Int32
	ref   *taskRef // 运行期间持有任务的拥有引用, 同时是包装回调的解析点
}

// New 构造一个绑定指定调度器的定时器, 需要调用 Start 启动
func New(sched timerapi.TaskScheduler, opt TimerOption, opts ...Option) *Timer {
	t := &Timer{
		id:    nextID(),
		opt:   opt,
		sched: sched,
		clock: systemClock,
		gate:  envGate,
		ref:   &taskRef{},
	}
	for _, o := range opts {
		o(t)
	}
	// 包装回调不捕获句柄, 被遗弃的运行中句柄可以被回收, 回收时隐式 Stop
	runtime.SetFinalizer(t, (*Timer).Stop)
	return t
}

// NewWithCallback 便捷构造函数
func NewWithCallback(sched timerapi.TaskScheduler, period time.Duration, callback func(), oneshot bool, opts ...Option) *Timer {
	return New(sched, TimerOption{Period: period, Callback: callback, Oneshot: oneshot}, opts...)
}

// ID 返回定时器的全局唯一 ID
func (t *Timer) ID() uint64 {
	return t.id
}

// SetOption 在 Start 之前替换配置, 启动后调用被忽略
func (t *Timer) SetOption(opt TimerOption) {
	if t.state.Load() != stateIdle {
		return
	}
	t.opt = opt
}

// Start 启动定时器. 幂等, 只有第一次调用构造任务并提交; 配置不合法时
// 返回错误并回到未启动状态, 修正配置后可以重试. 非实时模式下是空操作.
func (t *Timer) Start() error {
	// 仿真/回放模式下真实定时器不允许触发
	if !t.gate.RealtimeMode() {
		return nil
	}

	// 只有赢得 Idle→Running 切换的调用者继续初始化
	if !t.state.CompareAndSwap(stateIdle, stateRunning) {
		return nil
	}

	if err := t.opt.validate(); err != nil {
		t.state.Store(stateIdle)
		return err
	}

	tk := newTask(t.id, t.opt.periodMS())
	if t.opt.Oneshot {
		tk.run = oneshotFunc(t.ref, t.opt.Callback)
	} else {
		tk.run = periodicFunc(t.ref, t.opt.Callback, t.sched, t.clock)
	}
	t.ref.p.Store(tk)

	if !t.sched.Submit(tk) {
		t.ref.p.Store(nil)
		t.state.Store(stateStopped)
		return ErrSchedulerClosed
	}
	if env.Debug {
		log.Info("Pulse timer [%v] started.", t.id)
	}
	return nil
}

// Stop 停止定时器. 幂等; 阻塞等待正在执行的回调结束, 返回之后
// 这个句柄的回调再也不会开始执行. 停止是终态, 需要再次运行时应创建新的句柄.
func (t *Timer) Stop() {
	if !t.state.CompareAndSwap(stateRunning, stateStopped) {
		return
	}

	tk := t.ref.resolve()
	if tk == nil {
		return
	}

	// 先抢到执行锁再清空拥有引用: 正在执行的回调结束之前 Stop 不会返回;
	// 引用清空之后, 已经在调度队列中的触发解析失败, 静默返回
	tk.mu.Lock()
	t.ref.p.Store(nil)
	tk.mu.Unlock()

	if env.Debug {
		log.Info("Pulse timer [%v] stopped.", t.id)
	}
}

// Stopped 检查定时器是否已停止
func (t *Timer) Stopped() bool {
	return t.state.Load() == stateStopped
}
