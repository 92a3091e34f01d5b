package main

import (
	"flag"
	"log"

	"github.com/gonewx/roadquest/pkg/app"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	worldPath := flag.String("world", app.DefaultWorldPath, "World config file (disk first, then embedded data)")
	effectsPath := flag.String("effects", app.DefaultEffectsPath, "Particle effects file")
	textMode := flag.Bool("text", false, "Start in the text version")
	flag.Parse()

	// 初始化嵌入资源，必须在加载任何配置之前
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		WorldPath:   *worldPath,
		EffectsPath: *effectsPath,
		TextMode:    *textMode,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("RoadQuest")
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)

	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
