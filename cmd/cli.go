package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fzft/go-numeric-display/deps/linenoise"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

const (
	DisplayCliHisFileEnv     = "DISPLAYCLI_HISTFILE"
	DisplayCliHisFileDefault = ".displaycli_history"
	DisplayCliPrompt         = "display> "
)

type DisplayCliCfg struct {
	hostIp      string
	hostPort    int
	timeout     time.Duration
	historyFile string
	version     bool
}

// DisplayCli sends commands to a display, either from its arguments, from a
// pipe on stdin, or interactively.
type DisplayCli struct {
	config *DisplayCliCfg
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	client *Client
}

func NewDisplayCli(in io.Reader, out, errOut io.Writer) *DisplayCli {
	return &DisplayCli{config: &DisplayCliCfg{}, in: in, out: out, errOut: errOut}
}

func (cli *DisplayCli) Version(gitSHA1, gitDirty string) string {
	version := "displayctl"
	// Add git commit and working tree status when available
	if isGitSHA1(gitSHA1) {
		version = fmt.Sprintf("%s (git:%s", version, gitSHA1)
		if dirtyInt, err := strconv.ParseInt(gitDirty, 10, 64); err == nil && dirtyInt != 0 {
			version = fmt.Sprintf("%s-dirty", version)
		}
		version = fmt.Sprintf("%s)", version)
	}
	return version
}

func (cli *DisplayCli) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("displayctl", pflag.ContinueOnError)
	fs.SetOutput(cli.errOut)
	fs.StringVarP(&cli.config.hostIp, "host", "h", "127.0.0.1", "Display hostname")
	fs.IntVarP(&cli.config.hostPort, "port", "p", 23, "Display port")
	fs.DurationVarP(&cli.config.timeout, "timeout", "t", DefaultTimeout, "Time to wait for each ACK")
	fs.StringVar(&cli.config.historyFile, "history", historyPath(), "History file for interactive mode")
	fs.BoolVar(&cli.config.version, "version", false, "Output version and exit")
	fs.Usage = func() {
		fmt.Fprintf(cli.errOut, "Usage: displayctl [OPTIONS] [command]\n\n"+
			"Commands: <number> | CD<seconds> | CLR | RSTNW | ping\n\n")
		fs.PrintDefaults()
	}
	return fs
}

func (cli *DisplayCli) Run(args []string, gitSHA1, gitDirty string) error {
	fs := cli.flagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if cli.config.version {
		fmt.Fprintln(cli.out, cli.Version(gitSHA1, gitDirty))
		return nil
	}

	addr := net.JoinHostPort(cli.config.hostIp, strconv.Itoa(cli.config.hostPort))
	client, err := Dial(addr, cli.config.timeout)
	if err != nil {
		return err
	}
	cli.client = client
	defer client.Close()

	if rest := fs.Args(); len(rest) > 0 {
		return cli.issue(strings.Join(rest, " "))
	}
	if f, ok := cli.in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return cli.repl()
	}
	return cli.pipe()
}

// issue sends one command and prints the outcome.
func (cli *DisplayCli) issue(line string) error {
	var err error
	if strings.EqualFold(line, "ping") {
		err = cli.client.Probe()
	} else {
		err = cli.client.Send(line)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "ACK")
	return nil
}

func (cli *DisplayCli) pipe() error {
	scanner := bufio.NewScanner(cli.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := cli.issue(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (cli *DisplayCli) clearScreen(ln *linenoise.LineNoise) {
	if err := ln.ClearScreen(cli.out); err != nil {
		fmt.Fprintf(cli.errOut, "(error) clear screen: %v\n", err)
	}
}

func (cli *DisplayCli) repl() error {
	ln := linenoise.New()
	defer ln.Close()

	history := cli.config.historyFile
	if history != "" {
		if err := ln.HistoryLoad(history); err != nil {
			fmt.Fprintf(cli.errOut, "cannot load history: %v\n", err)
		}
	}

	for {
		line, err := ln.Prompt(DisplayCliPrompt)
		if err != nil {
			if linenoise.IsAbort(err) {
				break
			}
			return err
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return cli.saveHistory(ln)
		case line == "clear":
			cli.clearScreen(ln)
			continue
		}

		ln.AppendHistory(line)
		if err := cli.issue(line); err != nil {
			fmt.Fprintf(cli.errOut, "(error) %v\n", err)
		}
	}
	return cli.saveHistory(ln)
}

func (cli *DisplayCli) saveHistory(ln *linenoise.LineNoise) error {
	if cli.config.historyFile == "" {
		return nil
	}
	return ln.HistorySave(cli.config.historyFile)
}

func isGitSHA1(s string) bool {
	if s == "" || strings.Trim(s, "0") == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

func historyPath() string {
	if p := os.Getenv(DisplayCliHisFileEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DisplayCliHisFileDefault)
}
