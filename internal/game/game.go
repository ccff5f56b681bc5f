// Package game runs the terminal front end: it owns a tcell screen, a
// battle, and the modal screens around it (shop, redeem, gallery, help).
// Everything, including the battle's turn timers, runs on the goroutine
// that calls Run.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"boss-clicker/internal/battle"
	"boss-clicker/internal/clock"
	"boss-clicker/internal/progression"
	"boss-clicker/internal/render"
	"boss-clicker/internal/save"

	"github.com/gdamore/tcell/v2"
)

// tickInterval paces redraws while floaters are fading.
const tickInterval = 250 * time.Millisecond

// Options configure a Game.
type Options struct {
	// Screen to draw on. When nil, New opens the controlling terminal.
	Screen  tcell.Screen
	Store   save.Store
	Profile string
	Rules   *battle.Rules
	// Scheduler paces enemy turns. When nil, timers are delivered through
	// the screen's event queue so they fire on the Run goroutine.
	Scheduler clock.Scheduler
	// History, when set, also observes the battle.
	History battle.Observer
	Logger  *slog.Logger
}

// Game is the top-level orchestrator.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	battle   *battle.Battle
	logger   *slog.Logger

	cursor      int
	tickPending bool
}

// New creates a Game, loading the profile's progress from opts.Store.
func New(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	screen := opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		if err := s.Init(); err != nil {
			return nil, fmt.Errorf("init screen: %w", err)
		}
		screen = s
	}

	g := &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen, logger),
		logger:   logger,
	}

	sched := opts.Scheduler
	if sched == nil {
		sched = &loopScheduler{screen: screen, logger: logger}
	}
	var observer battle.Observer = g.renderer
	if opts.History != nil {
		observer = battle.Observers{g.renderer, opts.History}
	}

	state := progression.Default()
	var saver battle.Saver
	if opts.Store != nil {
		state = save.LoadState(context.Background(), opts.Store, opts.Profile, logger)
		saver = save.Binder{Store: opts.Store, Profile: opts.Profile}
	}

	g.battle = battle.New(battle.Config{
		State:     state,
		Rules:     opts.Rules,
		Scheduler: sched,
		Observer:  observer,
		Saver:     saver,
		Logger:    logger,
	})
	return g, nil
}

// Run is the main loop. It returns when the player quits or the screen
// goes away.
func (g *Game) Run() {
	defer g.screen.Fini()
	defer g.battle.Close()

	g.battle.Start()
	g.renderer.AddMessage("Press 1-5 to fight, ? for help.")

	for {
		g.draw()
		ev := g.nextEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			if g.handleAction(keyToAction(ev)) {
				return
			}
		}
	}
}

// nextEvent blocks for the next screen event. Timer and tick events are
// handled here so modal screens keep the battle running underneath them;
// they are still returned so the caller redraws.
func (g *Game) nextEvent() tcell.Event {
	ev := g.screen.PollEvent()
	switch ev := ev.(type) {
	case *timerEvent:
		ev.timer.fire()
	case *tickEvent:
		g.tickPending = false
	}
	return ev
}

// handleAction applies one action and reports whether the game should end.
func (g *Game) handleAction(a Action) bool {
	switch a {
	case ActionMove1, ActionMove2, ActionMove3, ActionMove4, ActionMove5:
		g.cursor = int(a - ActionMove1)
		g.submit()
	case ActionConfirm:
		g.submit()
	case ActionLeft:
		g.cursor = (g.cursor - 1 + len(battle.Moves)) % len(battle.Moves)
	case ActionRight:
		g.cursor = (g.cursor + 1) % len(battle.Moves)
	case ActionShop:
		g.runShop()
	case ActionRedeem:
		g.runRedeem()
	case ActionGallery:
		g.runGallery()
	case ActionHelp:
		g.runHelp()
	case ActionQuit:
		return g.confirmQuit()
	}
	return false
}

func (g *Game) submit() {
	m := battle.Moves[g.cursor]
	if err := g.battle.SubmitMove(m); err != nil {
		g.logger.Debug("move rejected", "move", m.String(), "error", err)
	}
}

func (g *Game) draw() {
	g.renderer.Draw(g.cursor)
	g.scheduleTick()
}

// scheduleTick asks for a redraw once floaters may have expired.
func (g *Game) scheduleTick() {
	if g.tickPending || !g.renderer.Prune() {
		return
	}
	g.tickPending = true
	screen := g.screen
	time.AfterFunc(tickInterval, func() {
		ev := &tickEvent{}
		ev.SetEventNow()
		_ = screen.PostEvent(ev)
	})
}

// putText writes a string to the screen at (x, y), one column per rune.
func (g *Game) putText(x, y int, s string, style tcell.Style) {
	sw, _ := g.screen.Size()
	for _, r := range s {
		if x >= sw {
			break
		}
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
