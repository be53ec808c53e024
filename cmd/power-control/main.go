package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/elcritch/power-control/internal/cpufreq"
	"github.com/elcritch/power-control/internal/hdmi"
	"github.com/elcritch/power-control/internal/led"
	"github.com/elcritch/power-control/internal/sysfs"
)

func main() {
	flags := initFlags()
	config := flags.config

	cpuDir := sysfs.New(config.CPURoot)
	resolver := cpufreq.NewResolver(cpuDir)
	governors := cpufreq.NewGovernors(cpuDir)

	applyGovernor(config, resolver, governors)
	applyLEDs(config)
	applyHDMI(config)

	klog.Info("Starting /healthz server on port :8080")
	go func() {
		http.HandleFunc("/healthz", healthz(resolver))
		if err := http.ListenAndServe(":8080", nil); err != nil {
			klog.Fatalf("failed to start /healthz server: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	for signal := range sigs {
		switch signal {
		case syscall.SIGINT, syscall.SIGTERM:
			klog.Infof("Received signal %q, shutting down", signal.String())
			return
		}
	}
}

// applyGovernor pins every discovered CPU to the configured default governor.
// Nothing here is fatal: a missing cpufreq tree means unsupported hardware and
// a bad governor name means a config mistake, and the process boots either
// way.
func applyGovernor(config *Config, resolver *cpufreq.Resolver, governors *cpufreq.Governors) {
	if config.DefaultGovernor == "" {
		return
	}
	cpus, err := resolver.CPUs()
	if err != nil {
		klog.Warningf("cpufreq tree %q unavailable, device unsupported or misconfigured: %v", config.CPURoot, err)
		return
	}
	for _, cpu := range cpus {
		if _, err := governors.Set(cpu, cpufreq.Governor(config.DefaultGovernor)); err != nil {
			klog.Warningf("failed to set startup governor: %v", err)
		}
	}
}

func applyLEDs(config *Config) {
	if !config.DisableLEDs {
		return
	}
	controller := led.NewController(sysfs.New(config.LEDRoot))
	ids, err := controller.List()
	if err != nil {
		klog.Warningf("led tree %q unavailable: %v", config.LEDRoot, err)
		return
	}
	for _, id := range ids {
		if err := controller.Disable(id); err != nil {
			klog.Warningf("failed to disable led: %v", err)
		}
	}
}

func applyHDMI(config *Config) {
	if !config.DisableHDMI {
		return
	}
	if err := hdmi.NewSwitch(sysfs.New(config.GraphicsRoot)).Disable(); err != nil {
		klog.Warningf("failed to disable hdmi output: %v", err)
	}
}

func healthz(resolver *cpufreq.Resolver) http.HandlerFunc {
	return func(resp http.ResponseWriter, req *http.Request) {
		cpus, err := resolver.CPUs()
		if err != nil {
			resp.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(resp, "cpufreq tree unavailable: %v\n", err)
			return
		}
		resp.WriteHeader(http.StatusOK)
		fmt.Fprintf(resp, "ok: %d cpus\n", len(cpus))
	}
}

type configSource interface {
	String() string
	open() (io.Reader, func() error, error)
}

type fileConfigSource struct {
	path string
}

func (fcs *fileConfigSource) open() (io.Reader, func() error, error) {
	file, err := os.Open(fcs.path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func (fcs *fileConfigSource) String() string {
	return "file:" + fcs.path
}

type envConfigSource struct {
	variable string
}

func (ecs *envConfigSource) open() (io.Reader, func() error, error) {
	data := os.Getenv(ecs.variable)
	if data == "" {
		return nil, nil, fmt.Errorf("config: environment variable %s is not set", ecs.variable)
	}
	return strings.NewReader(data), func() error { return nil }, nil
}

func (ecs *envConfigSource) String() string {
	return "env:" + ecs.variable
}

type stdinConfigSource struct{}

func (scs *stdinConfigSource) open() (io.Reader, func() error, error) {
	return os.Stdin, func() error { return nil }, nil
}

func (scs *stdinConfigSource) String() string {
	return "stdin"
}

type ConfigFlag struct {
	configSource
}

func (cf *ConfigFlag) Set(value string) error {
	if strings.HasPrefix(value, "file:") {
		cf.configSource = &fileConfigSource{path: strings.TrimPrefix(value, "file:")}
	} else if strings.HasPrefix(value, "env:") {
		cf.configSource = &envConfigSource{variable: strings.TrimPrefix(value, "env:")}
	} else if strings.HasPrefix(value, "stdin") {
		cf.configSource = &stdinConfigSource{}
	} else {
		return fmt.Errorf("invalid config source: %s", value)
	}

	return nil
}

func (cf *ConfigFlag) String() string {
	if cf.configSource == nil {
		return ""
	}
	return cf.configSource.String()
}

type FlagValues struct {
	Config ConfigFlag

	config *Config
}

func initFlags() FlagValues {
	values := FlagValues{}
	flags := flag.NewFlagSet("power-control", flag.ExitOnError)
	klog.InitFlags(flags)
	flags.Var(&values.Config, "config", `configuration source (in form "file:<path>", "env:<ENV_VARIABLE>" or "stdin")`)
	flags.Parse(os.Args[1:])
	if values.Config.configSource == nil {
		values.config = defaultConfig()
		return values
	}
	configReader, configCloser, err := values.Config.open()
	if err != nil {
		klog.Fatalf("failed to open --config %q: %v", values.Config.String(), err)
		os.Exit(1)
	}
	defer configCloser()

	config, err := parseConfig(configReader)
	if err != nil {
		klog.Fatalf("failed to parse --config %q: %v", values.Config.String(), err)
		os.Exit(1)
	}

	values.config = config

	return values
}
