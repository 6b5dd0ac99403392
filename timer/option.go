package timer

import (
	"time"

	"github.com/lonng/pulse/timer/timerapi"
	"github.com/pingcap/errors"
)

// Errors that could be reported from Timer.Start.
var (
	// ErrInvalidPeriod 周期不合法: 折算成整毫秒后必须大于 0 且小于 timerapi.MaxIntervalMS
	ErrInvalidPeriod = errors.New("pulse/timer: period out of range")
	// ErrNilCallback 回调为空
	ErrNilCallback = errors.New("pulse/timer: nil timer callback")
	// ErrSchedulerClosed 调度器已关闭, 任务无法提交
	ErrSchedulerClosed = errors.New("pulse/timer: scheduler closed")
)

// TimerOption 定时器配置, Start 之后不再变化
type TimerOption struct {
	Period   time.Duration // 触发周期; 单次定时器表示触发前的延迟
	Callback func()        // 用户回调
	Oneshot  bool          // 是否只触发一次
}

// periodMS 返回折算成整毫秒的周期
func (opt *TimerOption) periodMS() int64 {
	return int64(opt.Period / time.Millisecond)
}

// validate 校验配置. 校验失败是局部可恢复错误, 修正配置后可重新 Start
func (opt *TimerOption) validate() error {
	if opt.Callback == nil {
		return ErrNilCallback
	}
	if ms := opt.periodMS(); ms <= 0 || ms >= timerapi.MaxIntervalMS {
		return ErrInvalidPeriod
	}
	return nil
}
