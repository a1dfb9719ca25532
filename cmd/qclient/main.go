package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quic-go/quic-go"
	"golang.org/x/sync/errgroup"

	"github.com/quic-go/qclient"
	"github.com/quic-go/qclient/engine/quicgo"
	"github.com/quic-go/qclient/h3"
	qslog "github.com/quic-go/qclient/internal/slog"
	"github.com/quic-go/qclient/logging"
	"github.com/quic-go/qclient/metrics"
	"github.com/quic-go/qclient/qlog"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("qclient", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a TOML config file")
	insecure := fs.Bool("insecure", false, "skip certificate verification")
	maxHellos := fs.Int("max-client-hellos", 0, "client hello budget per connection")
	noReject := fs.Bool("disable-stateless-reject-support", false, "don't replay requests after a stateless reject")
	migrate := fs.Bool("migrate", false, "move the connection to a new socket after connecting")
	metricsAddr := fs.String("metrics", "", "serve Prometheus metrics on this address")
	qlogDir := fs.String("qlog", "", "write a qlog trace into this directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	urls := fs.Args()
	if len(urls) == 0 {
		return errors.New("usage: qclient [flags] <url>...")
	}

	opts := defaultOptions()
	if *configPath != "" {
		if err := loadConfig(*configPath, &opts); err != nil {
			return err
		}
	}
	// flags take precedence over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "insecure":
			opts.Insecure = *insecure
		case "max-client-hellos":
			opts.MaxClientHellos = *maxHellos
		case "disable-stateless-reject-support":
			opts.DisableStatelessRejects = *noReject
		case "migrate":
			opts.MigrateAfterConnect = *migrate
		case "metrics":
			opts.MetricsAddr = *metricsAddr
		case "qlog":
			opts.QlogDir = *qlogDir
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := qslog.DefaultLogger
	g, ctx := errgroup.WithContext(ctx)
	clientDone := make(chan struct{})
	if opts.MetricsAddr != "" {
		srv := &http.Server{Addr: opts.MetricsAddr, Handler: promhttp.Handler()}
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			select {
			case <-ctx.Done():
			case <-clientDone:
			}
			return srv.Close()
		})
	}
	g.Go(func() error {
		defer close(clientDone)
		return fetch(ctx, &opts, urls, out, logger)
	})
	return g.Wait()
}

// fetch requests all URLs over a single connection.
func fetch(ctx context.Context, opts *options, urls []string, out io.Writer, logger *slog.Logger) error {
	targets := make([]*url.URL, 0, len(urls))
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		if u.Scheme != "https" {
			return fmt.Errorf("unsupported scheme: %q", u.Scheme)
		}
		if len(targets) > 0 && u.Host != targets[0].Host {
			return fmt.Errorf("all URLs must have the same host, got %s and %s", targets[0].Host, u.Host)
		}
		targets = append(targets, u)
	}
	server, addr, err := resolve(targets[0])
	if err != nil {
		return err
	}

	conf := opts.clientConfig()
	conf.Logger = logger
	var tracers []*logging.ClientTracer
	if opts.MetricsAddr != "" {
		tracers = append(tracers, metrics.NewClientTracer())
	}
	if opts.QlogDir != "" {
		t, err := qlog.NewDirTracer(opts.QlogDir, server.Host)
		if err != nil {
			return err
		}
		defer t.Close()
		tracers = append(tracers, t.ClientTracer)
	} else if t := qlog.DefaultClientTracer(server.Host); t != nil {
		defer t.Close()
		tracers = append(tracers, t.ClientTracer)
	}
	conf.Tracer = logging.NewMultiplexedClientTracer(tracers...)

	engine := quicgo.NewEngine(&quicgo.Config{
		TLSConfig:  &tls.Config{InsecureSkipVerify: opts.Insecure},
		QUICConfig: &quic.Config{HandshakeIdleTimeout: opts.HandshakeTimeout},
	})
	c, err := qclient.NewClient(server, addr, engine, conf)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Initialize(); err != nil {
		return err
	}
	if !c.Connect(ctx) {
		return fmt.Errorf("connecting to %s failed after %d client hellos: %w", server, c.TotalHellosSent(), c.ConnectionError())
	}
	if opts.MigrateAfterConnect {
		if err := c.MigrateSocket(nil); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}

	for _, u := range targets {
		if err := fetchURL(ctx, c, u, opts.RequestTimeout, out); err != nil {
			return err
		}
	}
	return nil
}

func fetchURL(ctx context.Context, c *qclient.Client, u *url.URL, timeout time.Duration, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	data, err := h3.EncodeRequest(req)
	if err != nil {
		return err
	}
	resp, err := c.SendRequestAndWaitForResponse(ctx, data, true)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", u, err)
	}
	if resp.Err != nil {
		return fmt.Errorf("requesting %s: %w", u, resp.Err)
	}
	rsp, err := h3.DecodeResponse(resp.Body, req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", u, err)
	}
	defer rsp.Body.Close()
	fmt.Fprintf(out, "%s %s\n", u, rsp.Status)
	_, err = io.Copy(out, rsp.Body)
	return err
}

func resolve(u *url.URL) (qclient.ServerID, *net.UDPAddr, error) {
	host, portStr := u.Hostname(), u.Port()
	if portStr == "" {
		portStr = "443"
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return qclient.ServerID{}, nil, fmt.Errorf("invalid port: %q", portStr)
	}
	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, portStr))
	if err != nil {
		return qclient.ServerID{}, nil, err
	}
	return qclient.ServerID{Host: host, Port: uint16(port)}, addr, nil
}
