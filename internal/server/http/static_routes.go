package httpserver

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
)

const viewCookieName = "xiangqi_view"

// RegisterStaticRoutes mounts:
// - /web/*        -> desktop assets
// - /web_mobile/* -> mobile assets (falls back to the desktop dir)
// - /             -> redirect by ?view=, cookie, then User-Agent
func RegisterStaticRoutes(r chi.Router, desktopDir string, mobileDir string) {
	if r == nil {
		return
	}
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}

	r.Handle("/web/*", http.StripPrefix("/web/", http.FileServer(http.Dir(desktopDir))))
	r.Handle("/web_mobile/*", http.StripPrefix("/web_mobile/", http.FileServer(http.Dir(mobileDir))))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		target := "/web/"
		if pickView(w, r) == "mobile" {
			target = "/web_mobile/"
		}
		w.Header().Set("Vary", "User-Agent, Cookie")
		http.Redirect(w, r, target, http.StatusFound)
	})
	r.Get("/web", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web/", http.StatusFound)
	})
	r.Get("/web_mobile", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web_mobile/", http.StatusFound)
	})
}

// 优先级：?view= > cookie > User-Agent
func pickView(w http.ResponseWriter, r *http.Request) string {
	if v, ok := normalizeView(r.URL.Query().Get("view")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     viewCookieName,
			Value:    v,
			Path:     "/",
			MaxAge:   30 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
		return v
	}
	if c, err := r.Cookie(viewCookieName); err == nil {
		if v, ok := normalizeView(c.Value); ok {
			return v
		}
	}
	if isMobileUA(r.UserAgent()) {
		return "mobile"
	}
	return "web"
}

var viewAliases = map[string]string{
	"web":        "web",
	"desktop":    "web",
	"pc":         "web",
	"mobile":     "mobile",
	"m":          "mobile",
	"phone":      "mobile",
	"web_mobile": "mobile",
}

func normalizeView(v string) (string, bool) {
	view, ok := viewAliases[strings.ToLower(strings.TrimSpace(v))]
	return view, ok
}

var mobileUAHints = []string{"android", "iphone", "ipad", "ipod", "mobile", "windows phone", "harmony"}

func isMobileUA(ua string) bool {
	ua = strings.ToLower(ua)
	if ua == "" {
		return false
	}
	return slices.ContainsFunc(mobileUAHints, func(hint string) bool {
		return strings.Contains(ua, hint)
	})
}
