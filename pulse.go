package pulse

import (
	"sync"
	"time"

	"github.com/lonng/pulse/internal/env"
	"github.com/lonng/pulse/timer"
	"github.com/lonng/pulse/timer/timerapi"
	"github.com/lonng/pulse/timingwheel"
)

// VERSION returns current pulse version
var VERSION = "0.1.0"

// 默认的全局时间轮
var (
	mu      sync.Mutex         //锁
	Default timerapi.Scheduler //默认时间轮调度器
)

// Start 启动默认的时间轮
func Start() {
	mu.Lock()
	defer mu.Unlock()

	// 防止重复启动
	if Default != nil {
		return
	}

	Default = timingwheel.NewWheel("default", timerapi.WheelResolution, env.WheelSlotNum, env.WheelWorkerNum)
	Default.Start()
}

// Replace 替换默认的时间轮调度器
func Replace(s timerapi.Scheduler) {
	mu.Lock()
	defer mu.Unlock()

	// 此处可能被绕过
	if s == nil {
		return
	}
	if Default != nil && Default != s {
		Default.Close()
	}
	s.Start()
	Default = s
}

// Close 关闭默认时间轮, 丢弃所有未触发的任务
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if Default != nil {
		Default.Close()
	}
}

// State 返回默认时间轮的当前状态
func State() timerapi.ExecutorState {
	mu.Lock()
	defer mu.Unlock()

	if Default == nil {
		return timerapi.ExecutorStateCreated
	}
	return Default.State()
}

// defaultScheduler 返回默认时间轮, 尚未创建时先创建并启动
func defaultScheduler() timerapi.Scheduler {
	Start()

	mu.Lock()
	defer mu.Unlock()
	return Default
}

//====

// NewTimer 创建一个绑定默认时间轮的周期定时器, 每隔 period 执行一次 fn.
// 需要调用 Start 方法来启动, 调用 Stop 方法可以停止.
func NewTimer(period time.Duration, fn func()) *timer.Timer {
	return timer.New(defaultScheduler(), timer.TimerOption{Period: period, Callback: fn})
}

// NewOneshotTimer 创建一个绑定默认时间轮的单次定时器, 等待 delay 后执行一次 fn.
// 需要调用 Start 方法来启动, 调用 Stop 方法可以停止.
func NewOneshotTimer(delay time.Duration, fn func()) *timer.Timer {
	return timer.New(defaultScheduler(), timer.TimerOption{Period: delay, Callback: fn, Oneshot: true})
}
