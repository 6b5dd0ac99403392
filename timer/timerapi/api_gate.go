package timerapi

// ModeGate 运行模式门控. 确定性回放/仿真模式下真实定时器不允许触发,
// 此时 Timer.Start 是空操作, 不会创建也不会提交任何任务.
type ModeGate interface {
	// RealtimeMode 返回进程是否运行在实时模式
	RealtimeMode() bool
}

// GateFunc 实现 ModeGate 接口
var _ ModeGate = (GateFunc)(nil)

// GateFunc 函数形式的 ModeGate, 便于测试中注入
type GateFunc func() bool

// RealtimeMode 返回进程是否运行在实时模式
func (f GateFunc) RealtimeMode() bool {
	return f()
}
