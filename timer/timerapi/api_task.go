package timerapi

import "time"

// 时间轮几何常量. 工作轮 512 槽 × 辅助轮 64 槽 × 2ms 分辨率.
const (
	// WheelResolutionMS 时间轮最小调度粒度(ms), 所有计算出的触发偏移都不小于该值
	WheelResolutionMS int64 = 2

	// WheelResolution 时间轮最小调度粒度, WheelResolutionMS 的 time.Duration 形式
	WheelResolution = time.Duration(WheelResolutionMS) * time.Millisecond

	// MaxIntervalMS 定时周期上限(ms), 创建任务时校验, 周期必须小于该值
	MaxIntervalMS int64 = 512 * 64 * WheelResolutionMS
)

// Task 表示一个已经包装好回调的定时任务, 由调度器在到期后触发
type Task interface {
	// ID 返回任务的全局唯一 ID
	ID() uint64

	// NextFireDuration 返回从提交时刻起, 到下一次触发的等待时长
	NextFireDuration() time.Duration

	// Run 执行包装后的回调, 由调度器的工作协程调用
	Run()
}
