// env 保存进程级别的运行开关和默认参数, 应在启动任何定时器之前设置, 之后只读.
package env

//goland:noinspection GoVarAndConstTypeMayBeOmitted,GoCommentStart
var (
	Debug    bool = false //调试模式, 打开后输出定时器与时间轮的生命周期日志
	Realtime bool = true  //实时模式开关, 确定性回放/仿真时置为 false, Timer.Start 将变成空操作

	//默认时间轮
	WheelSlotNum   int = 512 //默认时间轮槽位数, 向上取整到 2 的幂
	WheelWorkerNum int = 2   //默认时间轮回调工作协程数
)
