package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/aredhel/polytone-edit/internal/config"
	"github.com/aredhel/polytone-edit/internal/editor"
	"github.com/aredhel/polytone-edit/internal/logger"
	"github.com/aredhel/polytone-edit/internal/resolver"
	"github.com/aredhel/polytone-edit/internal/watcher"
	"github.com/aredhel/polytone-edit/pkg/coloredit"
	"github.com/aredhel/polytone-edit/pkg/polytone"
	"github.com/aredhel/polytone-edit/pkg/viewport"
)

// panStep is the scroll fraction moved per arrow key press.
const panStep = 0.05

type app struct {
	cfg  *config.Config
	root string

	pack      *polytone.ResourcePack
	session   *editor.Session
	colormaps []polytone.Namespace
	current   int
	columns   []*coloredit.Column
	gridW     int
	gridH     int

	view viewport.View

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	texSize  [2]int32

	stale       atomic.Bool
	cancelWatch context.CancelFunc
}

func newApp(cfg *config.Config, root string, pack *polytone.ResourcePack) (*app, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Viewer.Width), int32(cfg.Viewer.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rendererFlags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.Viewer.VSync {
		rendererFlags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(window, -1, rendererFlags)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	a := &app{
		cfg:      cfg,
		root:     root,
		window:   window,
		renderer: renderer,
		view:     viewport.NewView(),
	}

	zoom := cfg.Viewer.Zoom
	if zoom >= viewport.MinZoom && zoom <= viewport.MaxZoom {
		a.view.Zoom = float64(zoom)
	}

	a.setPack(pack)

	if cfg.Pack.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		a.cancelWatch = cancel
		go func() {
			err := watcher.Watch(ctx, root, func() { a.stale.Store(true) })
			if err != nil && ctx.Err() == nil {
				logger.Warn("pack watcher stopped", zap.Error(err))
			}
		}()
	}

	return a, nil
}

func (a *app) close() {
	if a.cancelWatch != nil {
		a.cancelWatch()
	}
	if a.texture != nil {
		a.texture.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Destroy()
	}
	if a.window != nil {
		a.window.Destroy()
	}
	sdl.Quit()
}

// setPack replaces the loaded pack, keeping the current colormap selection
// when its namespace still exists after a reload.
func (a *app) setPack(pack *polytone.ResourcePack) {
	var keep polytone.Namespace
	if a.current < len(a.colormaps) {
		keep = a.colormaps[a.current]
	}

	a.pack = pack
	a.session = editor.NewSession(pack)
	a.colormaps = pack.ColormapNamespaces()
	a.current = 0
	for i, ns := range a.colormaps {
		if ns == keep {
			a.current = i
			break
		}
	}
	a.selectColormap(a.current)
}

func (a *app) selectColormap(i int) {
	a.columns = nil
	a.gridW, a.gridH = 0, 0
	if len(a.colormaps) == 0 {
		return
	}

	a.current = i % len(a.colormaps)
	ns := a.colormaps[a.current]

	cols, err := a.session.SelectColormap(ns)
	if err != nil {
		logger.Error("failed to load colormap", zap.Stringer("colormap", ns), zap.Error(err))
		return
	}

	a.columns = cols
	a.gridW = len(cols)
	for _, col := range cols {
		if col.Len() > a.gridH {
			a.gridH = col.Len()
		}
	}
	a.view.ScrollX, a.view.ScrollY = 0, 0
}

func (a *app) run() error {
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN {
					if quit := a.handleKey(e); quit {
						return nil
					}
				}
			case *sdl.MouseWheelEvent:
				if e.Y > 0 {
					a.zoomStep(1)
				} else if e.Y < 0 {
					a.zoomStep(-1)
				}
			}
		}

		a.draw()
		a.updateTitle()

		if !a.cfg.Viewer.VSync {
			sdl.Delay(16)
		}
	}
}

// handleKey returns true when the viewer should quit.
func (a *app) handleKey(e *sdl.KeyboardEvent) bool {
	ctrl := e.Keysym.Mod&sdl.KMOD_CTRL != 0

	switch e.Keysym.Sym {
	case sdl.K_ESCAPE:
		return true
	case sdl.K_LEFT:
		a.view.ScrollX = clamp01(a.view.ScrollX - panStep)
	case sdl.K_RIGHT:
		a.view.ScrollX = clamp01(a.view.ScrollX + panStep)
	case sdl.K_UP:
		a.view.ScrollY = clamp01(a.view.ScrollY - panStep)
	case sdl.K_DOWN:
		a.view.ScrollY = clamp01(a.view.ScrollY + panStep)
	case sdl.K_EQUALS, sdl.K_KP_PLUS:
		a.zoomStep(1)
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		a.zoomStep(-1)
	case sdl.K_f:
		vw, vh := a.drawableSize()
		a.view.FitZoom(int(vw), int(vh), a.gridW, a.gridH)
	case sdl.K_TAB:
		a.selectColormap(a.current + 1)
	case sdl.K_F5:
		a.reload()
	case sdl.K_r:
		a.session.ResetAll()
	case sdl.K_s:
		if ctrl {
			a.commit()
		}
	}
	return false
}

func (a *app) zoomStep(delta int) {
	a.view.ZoomStep(delta, a.gridW, a.gridH)
}

func (a *app) reload() {
	if a.session.HasUnsavedChanges() {
		logger.Warn("reload skipped: unsaved changes, commit or reset first")
		return
	}

	pack, err := resolver.Resolve(a.root)
	if err != nil {
		logger.Error("reload failed", zap.Error(err))
		return
	}
	a.setPack(pack)
	a.stale.Store(false)
	logger.Info("pack reloaded", zap.String("root", a.root))
}

func (a *app) commit() {
	saved, failed := a.session.CommitAll(func(label string, percent float64) {
		logger.Info("saving", zap.String("asset", label), zap.Float64("progress", percent))
	})
	if failed > 0 {
		logger.Warn("some assets failed to save", zap.Int("saved", saved), zap.Int("failed", failed))
	}
}

func (a *app) drawableSize() (int32, int32) {
	w, h, err := a.renderer.GetOutputSize()
	if err != nil {
		winW, winH := a.window.GetSize()
		return winW, winH
	}
	return w, h
}

func (a *app) draw() {
	a.renderer.SetDrawColor(24, 24, 28, 255)
	a.renderer.Clear()

	if a.gridW > 0 && a.gridH > 0 {
		a.drawColormap()
	}

	a.renderer.Present()
}

func (a *app) drawColormap() {
	outW, outH := a.drawableSize()
	winW, _ := a.window.GetSize()
	if winW > 0 {
		a.view.DeviceScale = float64(outW) / float64(winW)
	}

	slices := make([][]uint32, len(a.columns))
	for i, col := range a.columns {
		slices[i] = col.Current()
	}

	buf := viewport.FlattenColumns(slices, a.gridH)
	src := viewport.ToImage(buf, a.gridW, a.gridH)

	win := a.view.ComputeDrawWindow(int(outW), int(outH), a.gridW, a.gridH)
	img := viewport.RenderWindow(src, win)

	w := int32(img.Bounds().Dx())
	h := int32(img.Bounds().Dy())
	if a.texture == nil || a.texSize != [2]int32{w, h} {
		if a.texture != nil {
			a.texture.Destroy()
		}
		tex, err := a.renderer.CreateTexture(
			sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, w, h)
		if err != nil {
			logger.Error("texture creation failed", zap.Error(err))
			return
		}
		a.texture = tex
		a.texSize = [2]int32{w, h}
	}

	if err := a.texture.Update(nil, img.Pix, img.Stride); err != nil {
		logger.Error("texture upload failed", zap.Error(err))
		return
	}

	dst := sdl.Rect{
		X: int32(win.Dest.Min.X),
		Y: int32(win.Dest.Min.Y),
		W: int32(win.Dest.Dx()),
		H: int32(win.Dest.Dy()),
	}
	a.renderer.Copy(a.texture, nil, &dst)
}

func (a *app) updateTitle() {
	title := windowTitle
	if a.current < len(a.colormaps) {
		title = fmt.Sprintf("%s - %s [%d/%d] %.0fx",
			windowTitle, a.colormaps[a.current], a.current+1, len(a.colormaps), a.view.Zoom)
	}
	if a.session.HasUnsavedChanges() {
		title += " *"
	}
	if a.stale.Load() {
		title += " (changed on disk, F5 to reload)"
	}
	a.window.SetTitle(title)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
