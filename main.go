package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/fzft/go-numeric-display/config"
	"github.com/fzft/go-numeric-display/display"
	"github.com/fzft/go-numeric-display/log"
	"github.com/fzft/go-numeric-display/node"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", "display.yaml", "Path of the config file")
	listen := pflag.StringP("listen", "l", "", "Address to listen on (overrides the config file)")
	logLevel := pflag.String("log-level", "", "Log level (overrides the config file)")
	stdin := pflag.Bool("stdin", false, "Also accept commands from standard input, one per line")
	showVersion := pflag.BoolP("version", "v", false, "Output version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println(Version())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if err := log.InitLogger(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Logger.Sync()

	if err := run(cfg, *configPath, *stdin); err != nil {
		log.Logger.Error("display stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, configPath string, stdin bool) error {
	clk := clock.New()

	d := display.New(cfg.Display.Digits, display.NewWriterSink(os.Stdout))
	if err := d.Clear(); err != nil {
		return err
	}

	countdown := display.NewCountdown(d, clk)
	dispatcher := display.NewDispatcher(d, countdown,
		display.WithDecimals(cfg.Display.Decimals),
		display.WithNetworkReset(func() error {
			if err := cfg.ResetNetwork(configPath); err != nil {
				return err
			}
			log.Logger.Warn("network settings cleared, static address dropped on next start")
			return nil
		}))

	mux := node.NewMultiplexer(
		node.WithClock(clk),
		node.WithCapacity(cfg.Slots),
		node.WithTimeout(cfg.ClientTimeout),
		node.WithStatusInterval(cfg.StatusInterval))

	opts := []node.ServerOption{
		node.WithMultiplexer(mux),
		node.WithServerClock(clk),
		node.WithTickInterval(cfg.TickInterval),
		node.WithAliveInterval(cfg.AliveInterval),
		node.WithHousekeeper(countdown),
	}
	if stdin {
		opts = append(opts, node.WithHousekeeper(node.NewLineSource("stdin", os.Stdin, dispatcher)))
	}
	s := node.NewServer(cfg.Listen, dispatcher, opts...)

	// Like the hardware, greet with the last octet of our address so it can be found.
	if ip := bootAddress(cfg.Network); ip != nil {
		log.Logger.Info("starting", zap.String("version", Version()), zap.Stringer("ip", ip))
		octet, _ := strconv.Atoi(ip.String()[strings.LastIndexByte(ip.String(), '.')+1:])
		if err := d.ShowNumber(int64(octet), 0); err != nil {
			return err
		}
	}

	return s.Run()
}

// bootAddress returns the configured static address, or else the first
// non-loopback IPv4 address of the host.
func bootAddress(n config.NetworkConfig) net.IP {
	if n.IsStatic() {
		if ip := net.ParseIP(n.IP).To4(); ip != nil {
			return ip
		}
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok && !ipNet.IP.IsLoopback() {
			if ip := ipNet.IP.To4(); ip != nil {
				return ip
			}
		}
	}
	return nil
}
