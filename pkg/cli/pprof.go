package cli

import (
	"log/slog"

	"github.com/pkg/profile"
)

type pprofConfig struct {
	Mode string `default:"" enum:",cpu,mem,allocs,block,mutex,goroutine,trace" help:"Enable profiling"         placeholder:"mode" short:"p"`
	Dir  string `default:""                                                    help:"Profile output directory" type:"path"`
}

var profileModes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"goroutine": profile.GoroutineProfile,
	"trace":     profile.TraceProfile,
}

// start begins profiling if a mode was requested, returning a stop
// function that is always safe to call.
func (f pprofConfig) start(log *slog.Logger) (stop func()) {
	mode, ok := profileModes[f.Mode]
	if !ok {
		return func() {}
	}
	opts := []func(*profile.Profile){mode, profile.Quiet}
	if f.Dir != "" {
		opts = append(opts, profile.ProfilePath(f.Dir))
	}
	log.Debug("pprof start", "mode", f.Mode, "dir", f.Dir)
	profiler := profile.Start(opts...)
	return func() {
		log.Debug("pprof stop", "mode", f.Mode)
		profiler.Stop()
	}
}
