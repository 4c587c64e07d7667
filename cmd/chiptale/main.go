package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chiptale/audio"
	"github.com/lixenwraith/chiptale/core"
	"github.com/lixenwraith/chiptale/event"
	"github.com/lixenwraith/chiptale/system"
)

const (
	enemyNearRange = 6 // cells, chebyshev
	speedPerKey    = 5.0
	speedDecay     = 0.85 // per tick, keys pump velocity back up
)

// Demo drives the music engine the way the real game loop would:
// it owns a cursor the player moves, a wandering enemy, and it feeds
// theme/route/frame events through the queue every tick.
type Demo struct {
	screen        tcell.Screen
	width, height int

	engine *audio.Engine
	queue  *event.EventQueue
	music  *system.MusicSystem

	playerX, playerY int
	velX, velY       float64
	enemyX, enemyY   int

	themeIdx int
	route    core.Route
	frame    int64
}

func NewDemo() (*Demo, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	engine := audio.NewEngine(audio.LoadAudioConfig())
	if err := engine.Initialize(); err != nil {
		// Non-fatal, the engine keeps running silent
		log.Printf("audio initialization failed: %v", err)
	}
	// Pay the composition cost up front instead of on theme switches
	if err := engine.Warm(); err != nil {
		log.Printf("loop precompute failed: %v", err)
	}

	d := &Demo{
		screen: screen,
		engine: engine,
		queue:  event.NewEventQueue(256),
		route:  core.RoutePacifist,
	}
	d.music = system.NewMusicSystem(engine)

	d.width, d.height = screen.Size()
	d.playerX, d.playerY = d.width/2, d.height/2
	d.enemyX, d.enemyY = d.width/4, d.height/4

	d.pushTheme(core.Theme(d.themeIdx))
	return d, nil
}

func (d *Demo) pushTheme(t core.Theme) {
	d.queue.Push(event.GameEvent{
		Type:    event.EventThemeChange,
		Payload: &event.ThemeChangePayload{Theme: t},
		Frame:   d.frame,
	})
}

func (d *Demo) pushRoute(r core.Route) {
	d.route = r
	d.queue.Push(event.GameEvent{
		Type:    event.EventRouteChange,
		Payload: &event.RouteChangePayload{Route: r},
		Frame:   d.frame,
	})
}

func (d *Demo) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}

		switch ev.Key() {
		case tcell.KeyLeft:
			d.velX = -speedPerKey
		case tcell.KeyRight:
			d.velX = speedPerKey
		case tcell.KeyUp:
			d.velY = -speedPerKey
		case tcell.KeyDown:
			d.velY = speedPerKey
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'n':
				d.themeIdx = (d.themeIdx + 1) % int(core.ThemeCount)
				d.pushTheme(core.Theme(d.themeIdx))
			case 'p':
				d.pushRoute(core.RoutePacifist)
			case 'g':
				d.pushRoute(core.RouteGenocide)
			case 'm':
				d.engine.ToggleMute()
			case '+', '=':
				d.engine.SetMasterVolume(d.engine.MasterVolume() + 0.1)
			case '-':
				d.engine.SetMasterVolume(d.engine.MasterVolume() - 0.1)
			}
		}

	case *tcell.EventResize:
		d.width, d.height = d.screen.Size()
	}

	return true
}

func (d *Demo) tick() {
	d.frame++

	// Integrate cursor movement with friction
	d.playerX = clampInt(d.playerX+int(math.Round(d.velX/speedPerKey)), 0, d.width-1)
	d.playerY = clampInt(d.playerY+int(math.Round(d.velY/speedPerKey)), 0, d.height-1)
	d.velX *= speedDecay
	d.velY *= speedDecay

	// Enemy wanders
	if d.frame%4 == 0 {
		d.enemyX = clampInt(d.enemyX+rand.Intn(3)-1, 0, d.width-1)
		d.enemyY = clampInt(d.enemyY+rand.Intn(3)-1, 0, d.height-1)
	}

	speed := math.Hypot(d.velX, d.velY)
	near := absInt(d.enemyX-d.playerX) < enemyNearRange &&
		absInt(d.enemyY-d.playerY) < enemyNearRange

	d.queue.Push(event.GameEvent{
		Type:    event.EventFrame,
		Payload: &event.FramePayload{PlayerSpeed: speed, EnemyNear: near},
		Frame:   d.frame,
	})

	d.queue.Drain(d.music.HandleEvent)
	d.draw(speed, near)
}

func (d *Demo) draw(speed float64, near bool) {
	d.screen.Clear()

	theme, _ := d.engine.CurrentTheme()
	status := fmt.Sprintf("theme:%s  route:%s  speed:%.1f  enemy:%v", theme, d.engine.Route(), speed, near)
	if d.engine.IsSilent() {
		status += "  [silent]"
	}
	if d.engine.IsMuted() {
		status += "  [muted]"
	}
	if d.engine.IsDisabled() {
		status += "  [disabled]"
	}
	drawText(d.screen, 0, 0, status, tcell.StyleDefault)
	drawText(d.screen, 0, 1, "arrows move | n theme | p/g route | m mute | +/- volume | q quit", tcell.StyleDefault.Foreground(tcell.ColorGray))

	// Per-channel volume bars
	for id := core.ChannelID(0); id < core.ChannelCount; id++ {
		st := d.engine.ChannelState(id)
		bar := int(st.Current * 40)
		line := fmt.Sprintf("%-10s %5.2f ", id, st.Current)
		for i := 0; i < bar; i++ {
			line += "█"
		}
		drawText(d.screen, 0, 3+int(id), line, tcell.StyleDefault.Foreground(tcell.ColorGreen))
	}

	enemyStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	if near {
		enemyStyle = enemyStyle.Reverse(true)
	}
	d.screen.SetContent(d.enemyX, d.enemyY, 'E', nil, enemyStyle)
	d.screen.SetContent(d.playerX, d.playerY, '@', nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true))

	d.screen.Show()
}

func (d *Demo) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- d.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !d.handleInput(ev) {
				return
			}

		case <-ticker.C:
			d.tick()
		}
	}
}

func (d *Demo) cleanup() {
	d.engine.Close()
	d.screen.Fini()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col++
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func main() {
	demo, err := NewDemo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer demo.cleanup()

	demo.run()
}
