// Package main 是一个终端里的模拟检查器
//
// 不依赖图形窗口，直接驱动 simulation 并把快照画成字符：
//
//	go run ./cmd/roadsim                 # 交互模式（tcell）
//	go run ./cmd/roadsim --headless 30   # 无界面跑 30 秒并打印摘要
//
// 交互模式按键：
//
//	←/→ 或 A/D    驾驶（时间线里用 ↑/↓ 或 W/S）
//	E / Space      交互
//	Enter / Esc    关闭面板
//	C              模拟报名成功
//	Q / Ctrl-C     退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/simulation"
)

const (
	frameDt = 1.0 / 60
	// 终端没有按键抬起事件，按下后保持一小段时间，依赖终端的按键重复
	holdDuration = 0.2
)

var (
	worldFlag    = flag.String("world", "", "World config file (default: built-in world)")
	seedFlag     = flag.Int64("seed", 0, "Random seed (0 = time based)")
	headlessFlag = flag.Float64("headless", 0, "Run without a terminal UI for N seconds")
	driveFlag    = flag.Float64("drive", 1, "Axis value used in headless mode")
	verboseFlag  = flag.Bool("verbose", false, "Print simulation logs to stderr")
)

// inspectorOverlay 记录最近打开的面板
type inspectorOverlay struct {
	last *simulation.WaypointView
}

func (o *inspectorOverlay) Open(category string, wp simulation.WaypointView) {
	o.last = &wp
}

// heldAxis 模拟按住的方向键
type heldAxis struct {
	value     float64
	remaining float64
}

func (h *heldAxis) press(v float64) {
	h.value = v
	h.remaining = holdDuration
}

func (h *heldAxis) tick(dt float64) float64 {
	if h.remaining <= 0 {
		return 0
	}
	h.remaining -= dt
	return h.value
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	world := config.DefaultWorldConfig()
	if *worldFlag != "" {
		w, err := config.LoadWorldConfig(*worldFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load world: %v\n", err)
			os.Exit(1)
		}
		world = w
	}
	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	overlay := &inspectorOverlay{}
	sim, err := simulation.New(simulation.Options{
		World:   world,
		Rng:     rand.New(rand.NewSource(seed)),
		Overlay: overlay,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create simulation: %v\n", err)
		os.Exit(1)
	}
	// 终端里没有“画出路牌”这一步，直接登记闪电落点
	sim.SetSignAnchor(world.Sign.X, world.Sign.Y)

	if *headlessFlag > 0 {
		runHeadless(sim, overlay, *headlessFlag, *driveFlag, os.Stdout)
		return
	}
	if err := runTerminal(sim, overlay, world); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runHeadless 固定步长运行并每秒打印一次摘要
// 面板一打开就立即关闭，驾驶方向保持不变
func runHeadless(sim *simulation.Simulation, overlay *inspectorOverlay, seconds, axis float64, out io.Writer) {
	frames := int(math.Round(seconds / frameDt))
	now := 0.0
	for i := 0; i <= frames; i++ {
		snap := sim.Step(now, simulation.Input{Axis: axis})
		if overlay.last != nil {
			fmt.Fprintf(out, "opened panel %s\n", overlay.last.ID)
			overlay.last = nil
			sim.SetOverlayOpen(false)
		}
		if i%60 == 0 {
			for _, line := range statusLines(snap) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out)
		}
		now += frameDt
	}
}

// runTerminal tcell 交互模式
func runTerminal(sim *simulation.Simulation, overlay *inspectorOverlay, world *config.WorldConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()
	waypoints := sim.Waypoints()
	var horizontal, vertical heldAxis
	interact := false

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			key, isKey := ev.(*tcell.EventKey)
			if !isKey {
				continue
			}
			switch {
			case key.Key() == tcell.KeyCtrlC || key.Rune() == 'q':
				return nil
			case key.Key() == tcell.KeyLeft || key.Rune() == 'a':
				horizontal.press(-1)
			case key.Key() == tcell.KeyRight || key.Rune() == 'd':
				horizontal.press(1)
			case key.Key() == tcell.KeyUp || key.Rune() == 'w':
				vertical.press(-1)
			case key.Key() == tcell.KeyDown || key.Rune() == 's':
				vertical.press(1)
			case key.Key() == tcell.KeyEnter || key.Key() == tcell.KeyEscape:
				overlay.last = nil
				sim.SetOverlayOpen(false)
			case key.Rune() == 'e' || key.Rune() == ' ':
				interact = true
			case key.Rune() == 'c':
				if err := sim.Celebrate(); err != nil {
					log.Printf("[roadsim] %v", err)
				}
			}

		case <-ticker.C:
			h, v := horizontal.tick(frameDt), vertical.tick(frameDt)
			axis := h
			if sim.Snapshot().Mode == game.ModeTimeline {
				axis = v
			}
			snap := sim.Step(time.Since(start).Seconds(), simulation.Input{Axis: axis, Interact: interact})
			interact = false
			draw(screen, snap, waypoints, world, overlay)
		}
	}
}

func draw(screen tcell.Screen, snap simulation.Snapshot, waypoints []simulation.WaypointView, world *config.WorldConfig, overlay *inspectorOverlay) {
	screen.Clear()
	w, _ := screen.Size()

	title := tcell.StyleDefault.Bold(true)
	plain := tcell.StyleDefault
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	putString(screen, 0, 0, "roadsim  [arrows] drive  [e] interact  [enter] close  [c] celebrate  [q] quit", title)
	putString(screen, 0, 2, mapStrip(snap, waypoints, world, w-1), plain)
	y := 4
	for _, line := range statusLines(snap) {
		putString(screen, 0, y, line, plain)
		y++
	}
	if overlay.last != nil {
		y++
		putString(screen, 0, y, "PANEL: "+overlay.last.Title, title)
		for _, line := range overlay.last.Body {
			y++
			putString(screen, 2, y, line, dim)
		}
	}
	screen.Show()
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
