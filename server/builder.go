package server

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/SaiNageswarS/go-rest-boot/annotation"
	"github.com/SaiNageswarS/go-rest-boot/logger"
	"github.com/SaiNageswarS/go-rest-boot/rest"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type controllerReg struct {
	ctrl rest.Controller
	occs []annotation.Occurrence
}

// ─── public fluent builder ───────────────────────────────────
type Builder struct {
	httpPort    string
	mountPath   string
	cors        *cors.Cors
	sslProvider SSLProvider
	limiter     *rate.Limiter

	jwtSecret   string
	jwtExclude  []string
	jwtDisabled bool

	registry    *rest.Registry
	controllers []controllerReg
	extra       map[string]http.HandlerFunc
}

func New() *Builder {
	return &Builder{
		cors:     cors.AllowAll(),
		registry: rest.NewRegistry(),
		extra:    map[string]http.HandlerFunc{},
	}
}

// ----- basic wiring ----------------------------------------------------------

func (b *Builder) HTTPPort(p string) *Builder { b.httpPort = p; return b }

// Mount prefixes every controller route with the given path. Operational
// endpoints (/health, /metrics) stay at the root.
func (b *Builder) Mount(path string) *Builder { b.mountPath = path; return b }

func (b *Builder) CORS(c *cors.Cors) *Builder { b.cors = c; return b }

func (b *Builder) EnableSSL(p SSLProvider) *Builder { b.sslProvider = p; return b }

func (b *Builder) RateLimit(rps float64, burst int) *Builder {
	b.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return b
}

func (b *Builder) Handle(pattern string, h http.HandlerFunc) *Builder {
	b.extra[pattern] = h
	return b
}

// ----- JWT -------------------------------------------------------------------

func (b *Builder) JWTSecret(secret string) *Builder { b.jwtSecret = secret; return b }

// JWTExcludePaths skips token extraction for requests whose path starts with
// one of the given prefixes.
func (b *Builder) JWTExcludePaths(paths ...string) *Builder {
	b.jwtExclude = append(b.jwtExclude, paths...)
	return b
}

func (b *Builder) DisableJWTAuth() *Builder { b.jwtDisabled = true; return b }

// ----- controllers and validators --------------------------------------------

func (b *Builder) RegisterValidators(validators ...rest.Validator) *Builder {
	if err := b.registry.Register(validators...); err != nil {
		logger.Fatal("Failed registering validators", zap.Error(err))
	}
	return b
}

// RegisterController attaches a controller together with its annotation
// occurrences, either declared via annotation.Describe or scanned from source.
// Controller names must be unique; occurrences are matched by name.
func (b *Builder) RegisterController(ctrl rest.Controller, occurrences ...annotation.Occurrence) *Builder {
	for _, reg := range b.controllers {
		if reg.ctrl.Name() == ctrl.Name() {
			logger.Fatal("duplicate controller name", zap.String("controller", ctrl.Name()))
			return b
		}
	}
	b.controllers = append(b.controllers, controllerReg{ctrl: ctrl, occs: occurrences})
	return b
}

// ----- build -----------------------------------------------------------------

func (b *Builder) Build() (*BootServer, error) {
	if b.httpPort == "" {
		return nil, errors.New("http port must be set")
	}

	ln, err := net.Listen("tcp", b.httpPort)
	if err != nil {
		return nil, err
	}

	jwtAuth := rest.NewJWTAuth()
	switch {
	case b.jwtDisabled:
	case b.jwtSecret != "":
		jwtAuth.Configure(b.jwtSecret, b.jwtExclude...)
	default:
		logger.Warn("No JWT secret configured; token extraction is disabled")
	}

	var all []annotation.Occurrence
	for _, reg := range b.controllers {
		all = append(all, reg.occs...)
	}
	resolver := rest.NewResolver(all, b.registry)

	mux := chi.NewRouter()
	mux.Use(RequestID, Recovery, Metrics)
	if b.limiter != nil {
		mux.Use(RateLimit(b.limiter))
	}
	mux.Use(b.cors.Handler, jwtAuth.Middleware)

	registerRoutes := func(r chi.Router) {
		for _, reg := range b.controllers {
			for _, rt := range rest.BuildRoutes(reg.ctrl, all, resolver) {
				r.MethodFunc(rt.Method, rt.Pattern, rt.Handler)
			}
		}
	}
	if b.mountPath != "" && b.mountPath != "/" {
		mux.Route(b.mountPath, registerRoutes)
	} else {
		registerRoutes(mux)
	}

	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	for p, h := range b.extra {
		mux.HandleFunc(p, h)
	}

	httpSrv := &http.Server{
		Handler:      mux,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  10 * time.Minute,
	}

	if b.sslProvider != nil {
		if err := b.sslProvider.Configure(httpSrv); err != nil {
			_ = ln.Close()
			return nil, err
		}
	}

	return &BootServer{
		http:        httpSrv,
		ln:          ln,
		mux:         mux,
		sslProvider: b.sslProvider,
		jwtAuth:     jwtAuth,
	}, nil
}
