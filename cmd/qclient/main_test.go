package main

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"log/slog"
	"math/big"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/quic-go/quic-go/http3"
	"github.com/stretchr/testify/require"
)

func generateTLSConfig(t *testing.T) *tls.Config {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return &tls.Config{Certificates: []tls.Certificate{{Certificate: [][]byte{der}, PrivateKey: key}}}
}

func runServer(t *testing.T) int {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/hello", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "hello %s\n", r.URL.Query().Get("name"))
	})
	mux.HandleFunc("/teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	srv := &http3.Server{Handler: mux, TLSConfig: http3.ConfigureTLSConfig(generateTLSConfig(t))}
	go srv.Serve(conn)
	t.Cleanup(func() {
		srv.Close()
		conn.Close()
	})
	return conn.LocalAddr().(*net.UDPAddr).Port
}

func TestFetch(t *testing.T) {
	port := runServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := defaultOptions()
	opts.Insecure = true
	opts.QlogDir = t.TempDir()
	var out bytes.Buffer
	urls := []string{
		fmt.Sprintf("https://127.0.0.1:%d/hello?name=quic", port),
		fmt.Sprintf("https://127.0.0.1:%d/teapot", port),
	}
	require.NoError(t, fetch(ctx, &opts, urls, &out, slog.New(slog.DiscardHandler)))
	require.Equal(t,
		urls[0]+" 200 OK\nhello quic\n"+urls[1]+" 418 I'm a teapot\n",
		out.String(),
	)
}

func TestFetchErrors(t *testing.T) {
	ctx := context.Background()
	opts := defaultOptions()
	discard := slog.New(slog.DiscardHandler)

	err := fetch(ctx, &opts, []string{"http://example.com/"}, &bytes.Buffer{}, discard)
	require.EqualError(t, err, `unsupported scheme: "http"`)

	err = fetch(ctx, &opts, []string{"https://example.com/", "https://example.org/"}, &bytes.Buffer{}, discard)
	require.ErrorContains(t, err, "all URLs must have the same host")

	err = fetch(ctx, &opts, []string{"https://example.com:99999/"}, &bytes.Buffer{}, discard)
	require.EqualError(t, err, `invalid port: "99999"`)
}

func TestFetchUntrustedCertificate(t *testing.T) {
	port := runServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := defaultOptions()
	err := fetch(ctx, &opts, []string{fmt.Sprintf("https://127.0.0.1:%d/hello", port)}, &bytes.Buffer{}, slog.New(slog.DiscardHandler))
	require.ErrorContains(t, err, "connecting to 127.0.0.1:")
	require.ErrorContains(t, err, "failed after 1 client hellos")
}

func TestRunUsage(t *testing.T) {
	require.ErrorContains(t, run(nil, &bytes.Buffer{}), "usage")
	require.Error(t, run([]string{"-unknown-flag"}, &bytes.Buffer{}))
}
