package timerapi

// ExecutorState 调度器状态常量
type ExecutorState = int32

const (
	// ExecutorStateCreated 调度器已创建, 但未启动
	ExecutorStateCreated ExecutorState = 0
	// ExecutorStateRunning 调度器正在运行
	ExecutorStateRunning ExecutorState = 1
	// ExecutorStateClosed 调度器已关闭
	ExecutorStateClosed ExecutorState = 2
)

// TaskScheduler 定时器核心消费的最小调度契约.
// Submit 保证任务在 NextFireDuration 之后被触发一次, 实际延迟受调度粒度影响;
// 周期任务会在每次触发后重新提交同一个任务对象, 实现方必须容忍这种复用.
type TaskScheduler interface {
	// Submit 提交一个任务, 调度器关闭后返回 false
	Submit(task Task) bool
}

// Scheduler 完整的调度器接口, 在最小契约之上增加生命周期管理
type Scheduler interface {
	TaskScheduler

	// Start 启动调度器
	Start()

	// Close 关闭调度器, 丢弃所有未触发的任务
	Close()

	// State 返回调度器的当前状态
	State() ExecutorState
}
