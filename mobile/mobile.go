package mobile

import (
	"log"
	"net/http"

	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/suggest"
)

// StartServer starts the local HTTP server for the gomobile-bound app.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, port string) {
	m := game.NewManager(suggest.NewEngineSuggester(engine.NewEngine()))
	m.SetAutoReply(true)
	// 手机端只有一套页面
	h := httpserver.NewHandler(m, webDir, webDir)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, h); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
