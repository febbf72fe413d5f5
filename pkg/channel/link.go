// Package channel provides flow-controlled output links for the
// trace byte stream.
package channel

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/sigtrace/sigtrace.go/pkg/trace"
)

// Link is a ByteChannel with a lifecycle. Open blocks until the link
// is configured and ready to carry the stream.
type Link interface {
	trace.ByteChannel
	Open(ctx context.Context) error
	Close() error
}

// Config defines the output link configuration.
type Config struct {
	Target string
}

var defaultConfig = Config{
	Target: "-",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Target, "out", defaultConfig.Target, "Output target: - for stdout, a file path, ws://, wss:// or mqtt:// URL.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewLink creates the link selected by the target.
func (c *Config) NewLink() (Link, error) {
	target := c.Target
	if target == "" || target == "-" {
		return OpenStream("-")
	}
	if !strings.Contains(target, "://") {
		return OpenStream(target)
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "ws", "wss":
		return NewWebSocket(target), nil
	case "mqtt", "tcp", "ssl":
		return NewMQTT(target)
	}
	return nil, fmt.Errorf("unsupported output target %q", target)
}

// MustNewLink creates the link or aborts.
func (c *Config) MustNewLink() Link {
	link, err := c.NewLink()
	if err != nil {
		log.Fatalln(err)
	}
	return link
}
