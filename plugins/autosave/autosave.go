package autosave

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave periodically exports the drawing while it has unexported changes.
type AutoSave struct {
	api plugin.CanvasAPI

	mutex    sync.RWMutex
	enabled  bool
	interval time.Duration
	dir      string
	path     string // one file per session

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads [plugins.autosave] and starts the ticker when enabled.
func (p *AutoSave) Initialize(api plugin.CanvasAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}

	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsed, err := time.ParseDuration(strVal)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			case parsed <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			default:
				p.interval = parsed
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}

	if dirVal, ok := api.GetPluginConfigValue(pluginName, "dir"); ok {
		if s, isStr := dirVal.(string); isStr && s != "" {
			p.dir = s
		}
	}
	if p.dir == "" {
		p.dir = filepath.Join(os.TempDir(), "scribble-autosave")
	}
	p.path = filepath.Join(p.dir, fmt.Sprintf("scribble-%s.png", uuid.NewString()))

	isEnabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v, File: %s", pluginName, isEnabled, interval, p.path)

	if err := api.RegisterCommand("autosave", p.executeAutoSave); err != nil {
		return fmt.Errorf("failed to register 'autosave' command: %w", err)
	}

	if isEnabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval)
	}
	return nil
}

// Shutdown stops the ticker goroutine and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.DebugTagf("plugin", "%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

// Path returns the session autosave file.
func (p *AutoSave) Path() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.path
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// The canvas belongs to the host loop.
			p.api.Post(p.saveIfModified)
		case <-p.stopChan:
			return
		}
	}
}

// saveIfModified exports the drawing when it changed since the last export.
// It runs on the host loop.
func (p *AutoSave) saveIfModified() {
	if !p.api.IsModified() {
		logger.DebugTagf("plugin", "%s: Canvas not modified, skipping auto-save.", p.Name())
		return
	}
	path := p.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Errorf("%s: cannot create '%s': %v", p.Name(), filepath.Dir(path), err)
		return
	}
	if err := p.api.ExportFile(path); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), path, err)
		return
	}
	logger.Infof("%s: Auto-saved canvas to %s", p.Name(), path)
}

// executeAutoSave implements ":autosave", which saves immediately and
// reports the file.
func (p *AutoSave) executeAutoSave(args []string) error {
	p.saveIfModified()
	p.api.SetStatusMessage("autosave: %s", p.Path())
	return nil
}
