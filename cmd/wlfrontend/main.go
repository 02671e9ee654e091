// Command wlfrontend runs the Wayland protocol frontend standalone.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/perceptia/wlfrontend/internal/config"
	"github.com/perceptia/wlfrontend/internal/coordinator"
	"github.com/perceptia/wlfrontend/internal/logging"
	"github.com/perceptia/wlfrontend/internal/wlcache"
	"github.com/perceptia/wlfrontend/internal/wlengine"
	"github.com/perceptia/wlfrontend/internal/wlfacade"
	"github.com/perceptia/wlfrontend/internal/wlgateway"
	"github.com/perceptia/wlfrontend/internal/wloutput"
	"github.com/perceptia/wlfrontend/internal/wlproto"
	"github.com/perceptia/wlfrontend/internal/wlstate"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("c", "", "Path to configuration file")
	flag.StringVar(configPath, "config", "", "Path to configuration file")
	debugMode := flag.Bool("log", false, "Enable debug logging")
	helpFlag := flag.Bool("h", false, "Display help information")
	flag.BoolVar(helpFlag, "help", false, "Display help information")
	versionFlag := flag.Bool("v", false, "Show version info")
	flag.BoolVar(versionFlag, "version", false, "Show version info")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wlfrontend: Wayland protocol frontend of a display-server compositor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  -c, --config string\n    \tPath to configuration file\n")
		fmt.Fprintf(os.Stderr, "  --log\n    \tEnable debug logging\n")
		fmt.Fprintf(os.Stderr, "  -h, --help\n    \tDisplay help information\n")
		fmt.Fprintf(os.Stderr, "  -v, --version\n    \tShow version info\n")
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		return
	}
	if *versionFlag {
		fmt.Printf("wlfrontend version %s\n", version)
		return
	}

	if *debugMode {
		logging.Init(logging.LevelDebug, true)
	} else {
		logging.Init(logging.LevelInfo, false)
	}

	cfg := config.DefaultConfig()
	path := *configPath
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			def := filepath.Join(home, ".config", "wlfrontend", "config.json")
			if _, err := os.Stat(def); err == nil {
				path = def
			}
		}
	}
	if path != "" {
		if err := config.LoadConfig(path, &cfg); err != nil {
			logging.Warn("main: loading config %q: %v, continuing with defaults", path, err)
		}
	}

	if err := run(cfg); err != nil {
		logging.Error("main: %v", err)
		os.Exit(1)
	}
}

func run(cfg config.Configuration) error {
	cache := wlcache.New()
	defer cache.Close()

	state, err := wlstate.New()
	if err != nil {
		return fmt.Errorf("keyboard state: %w", err)
	}
	defer state.Close()

	// The real Coordinator (scene graph, window management, rendering)
	// is an external collaborator that this repository does not
	// provide. Running this binary standalone wires the
	// in-memory Fake so the protocol core is exercisable end to end;
	// an embedder links its own Coordinator against the same Facade
	// and Gateway types instead of calling this package's main.
	coord := coordinator.NewFake()

	eng := wlengine.New(cfg)

	facade := wlfacade.New(cache, coord, state, eng)
	offers := &wlproto.OfferFactory{Facade: facade}
	gateway := wlgateway.New(cache, state, eng, offers)
	gateway.Outputs = &outputWatcher{eng: eng}
	facade.Gateway = gateway

	if _, err := eng.CreateGlobal("wl_compositor", cfg.CompositorVersion, wlproto.BindCompositor(facade)); err != nil {
		return fmt.Errorf("register wl_compositor: %w", err)
	}
	if _, err := eng.CreateGlobal("wl_subcompositor", cfg.SubcompositorVersion, wlproto.BindSubcompositor(facade)); err != nil {
		return fmt.Errorf("register wl_subcompositor: %w", err)
	}
	if _, err := eng.CreateGlobal("wl_shell", cfg.ShellVersion, wlproto.BindShell(facade)); err != nil {
		return fmt.Errorf("register wl_shell: %w", err)
	}
	if _, err := eng.CreateGlobal("xdg_shell", cfg.XDGShellVersion, wlproto.BindXDGShell(facade)); err != nil {
		return fmt.Errorf("register xdg_shell: %w", err)
	}
	if _, err := eng.CreateGlobal("wl_seat", cfg.SeatVersion, wlproto.BindSeat(facade)); err != nil {
		return fmt.Errorf("register wl_seat: %w", err)
	}
	if _, err := eng.CreateGlobal("wl_data_device_manager", cfg.DataDeviceManagerVersion, wlproto.BindDeviceManager(facade)); err != nil {
		return fmt.Errorf("register wl_data_device_manager: %w", err)
	}
	if _, err := eng.CreateGlobal("screenshooter", cfg.ScreenshooterVersion, wlproto.BindScreenshooter()); err != nil {
		return fmt.Errorf("register screenshooter: %w", err)
	}
	if _, err := eng.CreateGlobal("wl_shm", cfg.ShmVersion, wlproto.BindShm(facade)); err != nil {
		return fmt.Errorf("register wl_shm: %w", err)
	}

	defaultBackend := wloutput.Default()
	bindOutput := wlproto.BindOutput(func() wloutput.Backend { return defaultBackend })
	if err := eng.AdvertiseOutput(defaultBackend.Name, defaultBackend, bindOutput); err != nil {
		return fmt.Errorf("advertise default output: %w", err)
	}

	if err := eng.Start(); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	logging.Info("main: received %v, shutting down", sig)

	eng.Stop()
	return nil
}

// outputWatcher relays Coordinator-reported output hot-plug into the
// Engine's advertise/destroy calls, keeping the Gateway itself
// independent of wlengine.
type outputWatcher struct {
	eng *wlengine.Engine
}

func (w *outputWatcher) OutputFound(name string) {
	backend := wloutput.Default()
	backend.Name = name
	if err := w.eng.AdvertiseOutput(name, backend, wlproto.BindOutput(func() wloutput.Backend { return backend })); err != nil {
		logging.Warn("main: advertise output %q: %v", name, err)
	}
}

func (w *outputWatcher) OutputLost(name string) {
	w.eng.DestroyOutput(name)
}
