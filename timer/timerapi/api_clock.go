package timerapi

import "time"

// MonotonicClock 单调时钟契约. 返回值严格非递减, 不受系统墙上时钟调整影响,
// 只有两次读数的差值有意义, 绝对值没有意义.
type MonotonicClock interface {
	// NowNano 返回单调纳秒时间戳
	NowNano() int64
}

// SystemClock 实现 MonotonicClock 接口
var _ MonotonicClock = (*SystemClock)(nil)

// SystemClock 基于运行时单调时钟的系统时钟
type SystemClock struct {
	base time.Time
}

// NewSystemClock 构造函数
func NewSystemClock() *SystemClock {
	return &SystemClock{base: time.Now()}
}

// NowNano 返回自时钟创建起流逝的纳秒数; time.Since 使用运行时的单调读数
func (c *SystemClock) NowNano() int64 {
	return int64(time.Since(c.base))
}
