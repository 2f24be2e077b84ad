package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/RealHoonjang/Dodgeball-AR/internal/config"
	"github.com/RealHoonjang/Dodgeball-AR/internal/logging"
)

//go:embed index.html
var htmlPage string

func main() {
	fs := pflag.NewFlagSet("dodge-web", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	path, _ := fs.GetString("config")
	cfg, err := config.Load(path, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	page := renderPage(cfg.Web.SSHDisplayHost, cfg.SSH.Port)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// renderPage fills the connect command into the landing page.
// The port is omitted when it is the SSH default.
func renderPage(host, port string) string {
	connect := host
	if port != "" && port != "22" {
		connect = "-p " + port + " " + host
	}
	return strings.ReplaceAll(htmlPage, "{{.SSHHost}}", connect)
}
