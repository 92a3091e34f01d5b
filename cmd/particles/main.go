// Package main provides a particle effect viewer for tuning data/effects.yaml.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--file <path>         Effects file (default data/effects.yaml, falls back to built-in effects)
//	--filter <keyword>    Initial filter by name (e.g., --filter=dig)
//	--effect <name>       Start with specific effect (e.g., --effect=confetti)
//	--auto-play           Automatically cycle through effects every 3 seconds
//
// Controls:
//
//	Mouse Click       - Spawn a burst at cursor position
//	Hold Mouse        - Stream the effect continuously
//	Left/Right Arrow  - Switch to previous/next effect
//	Space             - Spawn a burst at screen center
//	P                 - Toggle pause (停止切换，观看完整动画)
//	F or /            - Enter search mode
//	R                 - Clear all active particles
//	[ / ]             - Decrease/increase angle offset by 15°
//	\                 - Reset angle offset to 0°
//	Q/Escape          - Quit
//
// Search Mode (press F or /):
//
//	Type letters      - Filter effects by name
//	Backspace         - Delete last character
//	Enter/Escape      - Exit search mode
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenWidth  = 1024
	screenHeight = 768

	burstSize   = 40
	streamRate  = 60.0 // 按住鼠标时每秒生成数量
	autoPlayGap = 3 * time.Second
)

var (
	fileFlag     = flag.String("file", "data/effects.yaml", "Effects file")
	filterFlag   = flag.String("filter", "", "Initial filter by name keyword")
	effectFlag   = flag.String("effect", "", "Start with specific effect name")
	autoPlayFlag = flag.Bool("auto-play", false, "Auto cycle through effects every 3 seconds")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit")

// ParticleViewerGame implements ebiten.Game interface for the particle viewer
type ParticleViewerGame struct {
	library *particlePkg.Library
	pool    *systems.ParticlePool
	rng     *rand.Rand

	// Particle effect lists
	allEffectNames      []string
	filteredEffectNames []string
	currentIndex        int

	// Search mode
	searchMode  bool
	searchQuery string

	autoPlay      bool
	lastSpawnTime time.Time
	paused        bool
	angleOffset   float64 // 度
	streamAccum   float64

	statusMessage string
}

// NewParticleViewerGame creates a new particle viewer game instance
func NewParticleViewerGame(lib *particlePkg.Library) (*ParticleViewerGame, error) {
	allNames := lib.Names()
	sort.Strings(allNames)
	if len(allNames) == 0 {
		return nil, fmt.Errorf("no particle effects found")
	}

	initialQuery := *filterFlag
	filteredNames := filterEffects(allNames, initialQuery)
	if len(filteredNames) == 0 {
		log.Printf("Warning: No effects match initial filter %q, showing all", initialQuery)
		filteredNames = allNames
		initialQuery = ""
	}

	startIndex := 0
	for i, name := range filteredNames {
		if name == *effectFlag {
			startIndex = i
			break
		}
	}

	g := &ParticleViewerGame{
		library:             lib,
		pool:                systems.NewParticlePool("viewer", 4000),
		rng:                 rand.New(rand.NewSource(time.Now().UnixNano())),
		allEffectNames:      allNames,
		filteredEffectNames: filteredNames,
		currentIndex:        startIndex,
		searchQuery:         initialQuery,
		autoPlay:            *autoPlayFlag,
		lastSpawnTime:       time.Now(),
	}
	g.updateStatusMessage()
	log.Printf("Particle Viewer initialized: %d total effects, %d after filter", len(allNames), len(filteredNames))

	// 启动时在屏幕中心生成一次，避免空白屏幕
	g.spawnBurst(screenWidth/2, screenHeight/2, burstSize)
	return g, nil
}

// filterEffects returns effects matching the query (case-insensitive substring match)
func filterEffects(allNames []string, query string) []string {
	if query == "" {
		return allNames
	}
	q := strings.ToLower(query)
	var out []string
	for _, name := range allNames {
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, name)
		}
	}
	return out
}

// Update implements ebiten.Game
func (g *ParticleViewerGame) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if g.searchMode {
		g.updateSearchMode()
	} else if err := g.updateNormalMode(dt); err != nil {
		return err
	}

	g.pool.Update(dt)
	return nil
}

func (g *ParticleViewerGame) updateSearchMode() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.searchMode = false
		g.updateStatusMessage()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.searchQuery) > 0 {
		g.searchQuery = g.searchQuery[:len(g.searchQuery)-1]
		g.applySearch()
	}
	if chars := ebiten.AppendInputChars(nil); len(chars) > 0 {
		g.searchQuery += string(chars)
		g.applySearch()
	}
}

func (g *ParticleViewerGame) applySearch() {
	filtered := filterEffects(g.allEffectNames, g.searchQuery)
	if len(filtered) == 0 {
		g.statusMessage = fmt.Sprintf("Search: %s (no match)", g.searchQuery)
		return
	}
	g.filteredEffectNames = filtered
	g.currentIndex = 0
	g.statusMessage = fmt.Sprintf("Search: %s (%d)", g.searchQuery, len(filtered))
}

func (g *ParticleViewerGame) updateNormalMode(dt float64) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) || inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		g.searchMode = true
		g.statusMessage = "Search: " + g.searchQuery
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		g.updateStatusMessage()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.previousEffect()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.nextEffect()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.pool.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.angleOffset -= 15
		g.updateStatusMessage()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.angleOffset += 15
		g.updateStatusMessage()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackslash) {
		g.angleOffset = 0
		g.updateStatusMessage()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.spawnBurst(screenWidth/2, screenHeight/2, burstSize)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.spawnBurst(float64(x), float64(y), burstSize)
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.streamAccum += streamRate * dt
		x, y := ebiten.CursorPosition()
		n := int(g.streamAccum)
		g.streamAccum -= float64(n)
		g.spawnBurst(float64(x), float64(y), n)
	}

	if g.autoPlay && !g.paused && time.Since(g.lastSpawnTime) > autoPlayGap {
		g.nextEffect()
		g.spawnBurst(screenWidth/2, screenHeight/2, burstSize)
	}
	return nil
}

// Draw implements ebiten.Game
func (g *ParticleViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 30, G: 34, B: 44, A: 255})
	systems.DrawParticlePool(screen, g.pool, g.currentEffect() == particlePkg.EffectConfetti)
	g.drawUI(screen)
}

func (g *ParticleViewerGame) drawUI(screen *ebiten.Image) {
	lines := []string{
		g.statusMessage,
		fmt.Sprintf("Active particles: %d / %d", g.pool.Len(), g.pool.Capacity()),
		"Click: burst  Hold: stream  Left/Right: switch  Space: center  R: clear  P: pause  F: search  Q: quit",
	}
	if e := g.library.Get(g.currentEffect()); e != nil {
		lines = append(lines, fmt.Sprintf("life=[%.2f %.2f] speed=[%.0f %.0f] gravity=(%.0f, %.0f) drag=%.2f maxActive=%d",
			e.Life.Min, e.Life.Max, e.Speed.Min, e.Speed.Max, e.GravityX, e.GravityY, e.Drag, e.MaxActive))
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 10, 10+i*16)
	}
}

// Layout implements ebiten.Game
func (g *ParticleViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (g *ParticleViewerGame) currentEffect() string {
	if g.currentIndex < 0 || g.currentIndex >= len(g.filteredEffectNames) {
		return ""
	}
	return g.filteredEffectNames[g.currentIndex]
}

// spawnBurst 生成 n 个当前效果的粒子，并按角度偏移旋转初速度
func (g *ParticleViewerGame) spawnBurst(x, y float64, n int) {
	e := g.library.Get(g.currentEffect())
	if e == nil {
		return
	}
	rad := g.angleOffset * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	for i := 0; i < n; i++ {
		id := g.pool.SpawnEffect(e, x, y, g.rng)
		if p, ok := g.pool.Get(id); ok && rad != 0 {
			p.VX, p.VY = p.VX*cos-p.VY*sin, p.VX*sin+p.VY*cos
		}
	}
	g.lastSpawnTime = time.Now()
}

func (g *ParticleViewerGame) nextEffect() {
	if len(g.filteredEffectNames) == 0 {
		return
	}
	g.currentIndex = (g.currentIndex + 1) % len(g.filteredEffectNames)
	g.updateStatusMessage()
}

func (g *ParticleViewerGame) previousEffect() {
	if len(g.filteredEffectNames) == 0 {
		return
	}
	g.currentIndex = (g.currentIndex - 1 + len(g.filteredEffectNames)) % len(g.filteredEffectNames)
	g.updateStatusMessage()
}

func (g *ParticleViewerGame) updateStatusMessage() {
	state := ""
	if g.paused {
		state = " [PAUSED]"
	}
	g.statusMessage = fmt.Sprintf("[%d/%d] %s  angle offset: %.0f°%s",
		g.currentIndex+1, len(g.filteredEffectNames), g.currentEffect(), g.angleOffset, state)
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	lib, err := particlePkg.LoadEffectsFile(*fileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using built-in effects\n", err)
		lib = particlePkg.DefaultLibrary()
	}

	viewer, err := NewParticleViewerGame(lib)
	if err != nil {
		log.Fatalf("Failed to create viewer: %v", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("RoadQuest particle viewer")
	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
