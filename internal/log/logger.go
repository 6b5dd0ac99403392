package log

// Logger 日志接口, 宿主程序可通过 SetLogger 替换为自己的实现
type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
	Fatal(format string, args ...any)
}

func init() {
	SetLogger(NewConsoleLogger())
}

var (
	Info  func(format string, args ...any)
	Error func(format string, args ...any)
	Fatal func(format string, args ...any)
)

// SetLogger rewrites the default logger
func SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	Info = logger.Info
	Error = logger.Error
	Fatal = logger.Fatal
}
