package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	ntcrypt "github.com/MrEthical07/ntcrypt"
	"github.com/MrEthical07/ntcrypt/metrics/export/prometheus"
)

const usage = `usage: ntcrypt [-metrics] [-audit] <command> [flags]

commands:
  hash      read a password from stdin and print its "$3$" hash
  gensalt   print the setting string for the scheme
  verify    read a password from stdin and check it against -hash
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("ntcrypt", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	var (
		showMetrics = global.Bool("metrics", false, "print metrics in prometheus text format to stderr on exit")
		showAudit   = global.Bool("audit", false, "write audit events as JSON lines to stderr")
	)
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	b := ntcrypt.New()
	if *showAudit {
		cfg := ntcrypt.DefaultConfig()
		cfg.Audit.Enabled = true
		cfg.Audit.DropIfFull = false
		b = b.WithConfig(cfg).WithAuditSink(ntcrypt.NewJSONWriterSink(stderr))
	}
	hasher, err := b.Build()
	if err != nil {
		fmt.Fprintf(stderr, "ntcrypt: %v\n", err)
		return 1
	}
	defer func() {
		hasher.Close()
		if *showMetrics {
			fmt.Fprint(stderr, prometheus.NewPrometheusExporter(hasher).Render())
		}
	}()

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "hash":
		return runHash(hasher, rest, stdin, stdout, stderr)
	case "gensalt":
		return runGenSalt(hasher, rest, stdout, stderr)
	case "verify":
		return runVerify(hasher, rest, stdin, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "ntcrypt: unknown command %q\n", cmd)
		global.Usage()
		return 2
	}
}

func runHash(hasher *ntcrypt.Hasher, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	setting := fs.String("setting", "$3$", "setting or stored hash to hash under")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	password, err := readPassword(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "ntcrypt: read password: %v\n", err)
		return 1
	}

	encoded, err := hasher.Crypt(password, *setting)
	if err != nil {
		fmt.Fprintf(stderr, "ntcrypt: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, encoded)
	return 0
}

func runGenSalt(hasher *ntcrypt.Hasher, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gensalt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	count := fs.Uint64("count", 0, "cost parameter; must be 0")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	setting, err := hasher.GenerateSetting(*count, nil)
	if err != nil {
		fmt.Fprintf(stderr, "ntcrypt: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, setting)
	return 0
}

func runVerify(hasher *ntcrypt.Hasher, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		encoded    = fs.String("hash", "", "stored hash to check against")
		identifier = fs.String("id", "", "identifier recorded in audit events")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *encoded == "" {
		fmt.Fprintln(stderr, "ntcrypt: -hash is required")
		return 2
	}

	password, err := readPassword(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "ntcrypt: read password: %v\n", err)
		return 1
	}

	ok, err := hasher.Verify(context.Background(), *identifier, password, *encoded)
	if err != nil {
		fmt.Fprintf(stderr, "ntcrypt: %v\n", err)
		if errors.Is(err, ntcrypt.ErrMalformedHash) {
			return 2
		}
		return 1
	}
	if !ok {
		fmt.Fprintln(stdout, "mismatch")
		return 1
	}
	if upgrade, _ := hasher.NeedsUpgrade(*encoded); upgrade {
		canonical, _ := hasher.Upgrade(*encoded)
		fmt.Fprintf(stdout, "ok (legacy encoding, store %s)\n", canonical)
		return 0
	}
	fmt.Fprintln(stdout, "ok")
	return 0
}

// readPassword returns the first line of r without its line terminator.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
