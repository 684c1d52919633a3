package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/festin"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Runs    festin.RunService
	Buckets festin.BucketService
	Domains festin.DomainService

	// Optional overrides; see Main.
	Fetcher  festin.Fetcher
	Resolver festin.Resolver
	Indexer  festin.Indexer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB string `name:"db" env:"FESTIN_DB" help:"Run catalogue database path (default ~/.festin/festin.db)"`

	Scan ScanCmd `cmd:"" help:"Discover buckets starting from seed domains"`
	List ListCmd `cmd:"" help:"List buckets stored in the run catalogue"`
	Runs RunsCmd `cmd:"" help:"List recorded scan runs"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Domains     []string `arg:"" optional:"" help:"Seed domains"`
	FileDomains string   `short:"f" name:"file-domains" type:"existingfile" help:"File with seed domains, one per line"`

	Concurrency  int           `short:"c" default:"5" help:"Maximum number of domains probed at once"`
	HTTPTimeout  time.Duration `short:"T" name:"http-timeout" default:"10s" help:"Per-request timeout"`
	MaxRecursion int           `short:"M" name:"max-recursion" default:"5" help:"Maximum derivation depth from a seed"`
	DomainRegex  string        `short:"r" name:"domain-regex" help:"Only probe domains matching this regular expression"`
	Rate         float64       `default:"0" help:"Requests per second per host (0 disables limiting)"`

	Watch     bool   `short:"w" help:"Keep running and scan domains appended to the watch file"`
	WatchFile string `name:"watch-file" help:"File watched for new domains (defaults to --file-domains)"`

	Tor         bool     `help:"Route traffic through a SOCKS5 proxy"`
	ProxyAddr   string   `name:"proxy-addr" default:"127.0.0.1:9050" help:"SOCKS5 proxy address used with --tor"`
	DNSResolver []string `name:"dns-resolver" sep:"," help:"DNS servers for CNAME lookups (comma separated)"`
	Render      bool     `help:"Render pages in headless Chrome before extracting links"`

	Quiet bool `short:"q" help:"Only print warnings and errors"`
	Debug bool `short:"d" help:"Print debug logs and every discovered domain"`

	ResultFile           string `short:"o" name:"result-file" help:"Append found buckets to this file as JSON lines"`
	DiscoveredDomains    string `name:"discovered-domains" help:"Append filtered discovered domains to this file"`
	RawDiscoveredDomains string `name:"raw-discovered-domains" help:"Append every discovered domain to this file"`

	Index       bool   `help:"Download and index bucket objects into RediSearch"`
	IndexServer string `name:"index-server" env:"FESTIN_INDEX_SERVER" default:"redis://localhost:6379" help:"RediSearch server URL"`
	Extractor   string `enum:"trafilatura,readability" default:"trafilatura" help:"Content extractor for HTML objects (trafilatura, readability)"`

	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	RunID  string `name:"run" help:"Only show buckets found by this run"`
	Bucket string `help:"Only show this bucket name"`
	Limit  int    `short:"n" default:"0" help:"Maximum number of buckets to show (0 for all)"`
	Full   bool   `help:"Show every object of each bucket"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of runs to show"`
}
