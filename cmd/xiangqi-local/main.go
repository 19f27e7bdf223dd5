package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/suggest"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞；无图形界面时失败也无所谓
}

func main() {
	// 命令行优先，环境变量兜底
	addr := flag.String("addr", getenv("XIANGQI_ADDR", ":2888"), "listen address")
	webDir := flag.String("web", getenv("XIANGQI_WEB", ""), "directory with index.html / js / svg (empty: API only)")
	mobileDir := flag.String("web-mobile", getenv("XIANGQI_WEB_MOBILE", ""), "mobile asset directory (defaults to -web)")
	suggestURL := flag.String("suggest-url", getenv("XIANGQI_SUGGEST_URL", ""), "remote move-suggestion endpoint (empty: built-in engine)")
	suggestTimeout := flag.Duration("suggest-timeout", getenvDuration("XIANGQI_SUGGEST_TIMEOUT", 10*time.Second), "remote suggestion timeout")
	aiReply := flag.Bool("ai-reply", getenvBool("XIANGQI_AI_REPLY", true), "in pve games let the AI answer red moves automatically")
	open := flag.Bool("open", getenvBool("XIANGQI_OPEN", false), "open the browser after start")
	flag.Parse()

	var s suggest.Suggester
	if *suggestURL != "" {
		log.Printf("using remote suggester %s (timeout %v)", *suggestURL, *suggestTimeout)
		s = suggest.NewRemoteSuggester(*suggestURL, *suggestTimeout)
	} else {
		log.Printf("using built-in engine")
		s = suggest.NewEngineSuggester(engine.NewEngine())
	}

	m := game.NewManager(s)
	m.SetAutoReply(*aiReply)
	h := httpserver.NewHandler(m, *webDir, *mobileDir)
	srv := httpserver.NewServer(h)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Listen(*addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Close(shutdownCtx)
	})

	if *open {
		// 延迟一下再开浏览器，否则服务可能还没起来
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser(localURL(*addr))
		}()
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://127.0.0.1" + addr
	}
	return "http://" + addr
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("ignoring invalid %s=%q", key, v)
	}
	return def
}
