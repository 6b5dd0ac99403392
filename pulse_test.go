package pulse_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lonng/pulse"
	"github.com/lonng/pulse/timer/timerapi"
	"github.com/lonng/pulse/timingwheel"
	. "github.com/pingcap/check"
)

type pulseSuite struct{}

var _ = Suite(&pulseSuite{})

func TestPulse(t *testing.T) {
	TestingT(t)
}

func (s *pulseSuite) TestDefaultWheelTimers(c *C) {
	pulse.Start()
	defer pulse.Close()
	c.Assert(pulse.State(), Equals, timerapi.ExecutorStateRunning)

	var periodic, oneshot atomic.Int32
	pt := pulse.NewTimer(20*time.Millisecond, func() { periodic.Add(1) })
	ot := pulse.NewOneshotTimer(20*time.Millisecond, func() { oneshot.Add(1) })
	c.Assert(pt.Start(), IsNil)
	c.Assert(ot.Start(), IsNil)

	time.Sleep(300 * time.Millisecond)
	pt.Stop()
	fired := periodic.Load()

	//周期定时器反复触发
	c.Assert(int(fired) >= 5, IsTrue)
	//单次定时器只触发一次, 即使继续运行远超一个周期
	time.Sleep(200 * time.Millisecond)
	c.Assert(oneshot.Load(), Equals, int32(1))
	//Stop 之后周期定时器不再触发
	c.Assert(periodic.Load(), Equals, fired)
}

func (s *pulseSuite) TestReplace(c *C) {
	pulse.Start()
	old := pulse.Default

	w := timingwheel.NewWheel("replacement", timerapi.WheelResolution, 64, 1)
	pulse.Replace(w)
	c.Assert(pulse.Default, Equals, timerapi.Scheduler(w))
	c.Assert(pulse.State(), Equals, timerapi.ExecutorStateRunning)
	c.Assert(old.State(), Equals, timerapi.ExecutorStateClosed)

	//nil 替换被忽略
	pulse.Replace(nil)
	c.Assert(pulse.Default, Equals, timerapi.Scheduler(w))

	pulse.Close()
	c.Assert(pulse.State(), Equals, timerapi.ExecutorStateClosed)
}
