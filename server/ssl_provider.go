package server

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-rest-boot/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
)

type SSLProvider interface {
	// Configure mutates srv.TLSConfig so that http.Server can serve TLS.
	Configure(srv *http.Server) error

	// Run launches any background logic the provider needs
	// (ACME challenge listener, certificate refresh, etc.).
	// It must return when ctx is cancelled.
	Run(ctx context.Context) error
}

// DirCache is a Let's Encrypt provider caching certificates in a local
// directory.
func DirCache(domain, dir string) SSLProvider {
	return &dirCache{domain: domain, dir: dir}
}

type dirCache struct {
	domain string
	dir    string
	m      *autocert.Manager
}

func (d *dirCache) Configure(srv *http.Server) error {
	d.m = &autocert.Manager{
		Prompt: autocert.AcceptTOS,
		Cache:  autocert.DirCache(d.dir),
	}
	if d.domain != "" {
		d.m.HostPolicy = autocert.HostWhitelist(d.domain)
	}
	if srv.TLSConfig == nil {
		srv.TLSConfig = &tls.Config{}
	}
	srv.TLSConfig.GetCertificate = d.m.GetCertificate
	return nil
}

// Run serves the ACME http-01 challenge until ctx is cancelled. Must listen
// on port 80.
func (d *dirCache) Run(ctx context.Context) error {
	srv := &http.Server{Addr: ":http", Handler: d.m.HTTPHandler(nil)}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if d.domain != "" {
		go d.warmCertificate(ctx)
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed starting acme challenge listener", zap.Error(err))
		return err
	}
	return nil
}

// warmCertificate fetches the certificate eagerly so the first TLS handshake
// does not pay the ACME round trip.
func (d *dirCache) warmCertificate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	getCertificate := func() error {
		cert, err := d.m.GetCertificate(&tls.ClientHelloInfo{ServerName: d.domain})
		if err != nil {
			return err
		}
		if cert == nil {
			return autocert.ErrCacheMiss
		}
		return nil
	}

	if err := RetryWithExponentialBackoff(ctx, 10, 2*time.Second, getCertificate); err != nil {
		logger.Error("Failed to obtain certificate", zap.Error(err))
	}
}
