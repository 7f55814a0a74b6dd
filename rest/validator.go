// Package rest implements the annotation-driven routing and JWT authorization
// core of go-rest-boot: policy resolution, validator evaluation, route table
// building and request dispatch on top of chi.
package rest

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/SaiNageswarS/go-rest-boot/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Result is the outcome of one validator run or of a whole evaluation.
type Result struct {
	OK      bool
	Message string

	// Failures holds the individual failure reasons behind Message. One entry
	// in AND mode, all entries on total OR-mode failure.
	Failures []string
}

func Success() Result {
	return Result{OK: true}
}

func Failure(message string) Result {
	return Result{Message: message, Failures: []string{message}}
}

// Validator is a stateless predicate run against the request and the decoded
// JWT claims. Implementations must carry construction-time configuration only;
// no per-request mutable state.
type Validator interface {
	// Name identifies the validator in annotations and in the registry.
	Name() string
	Validate(r *http.Request, claims jwt.MapClaims) Result
}

// DefaultMessager supplies fallback text for failures that carry no message.
type DefaultMessager interface {
	DefaultMessage() string
}

// SuccessObserver and FailureObserver are observer hooks, invoked for every
// validator actually executed. They are not part of the pass/fail decision;
// validators skipped by short-circuiting never see their hooks fire.
type SuccessObserver interface {
	OnValidationSuccess(r *http.Request, claims jwt.MapClaims)
}

type FailureObserver interface {
	OnValidationFailed(r *http.Request, claims jwt.MapClaims, result Result)
}

// Registry binds validator names used in annotations to instances.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Validator
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]Validator{}}
}

func (reg *Registry) Register(validators ...Validator) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, v := range validators {
		if v == nil || v.Name() == "" {
			return fmt.Errorf("validator must have a non-empty name")
		}
		if _, exists := reg.byName[v.Name()]; exists {
			return fmt.Errorf("validator %q already registered", v.Name())
		}
		reg.byName[v.Name()] = v
	}
	return nil
}

func (reg *Registry) Lookup(name string) (Validator, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	v, ok := reg.byName[name]
	return v, ok
}

// Evaluate runs validators in declaration order and combines their results.
//
// AND mode (requireAll): short-circuits on the first failure. OR mode:
// short-circuits on the first success; when every validator fails, the
// aggregate message concatenates all failure reasons.
func Evaluate(r *http.Request, claims jwt.MapClaims, validators []Validator, requireAll bool) Result {
	if len(validators) == 0 {
		return Success()
	}
	if claims == nil {
		return Failure("JWT token required")
	}

	var failures []string
	for _, v := range validators {
		res := runValidator(v, r, claims)

		if res.OK {
			if obs, ok := v.(SuccessObserver); ok {
				obs.OnValidationSuccess(r, claims)
			}
			if !requireAll {
				return Success()
			}
			continue
		}

		if res.Message == "" {
			res.Message = defaultMessage(v)
		}
		res.Failures = []string{res.Message}
		if obs, ok := v.(FailureObserver); ok {
			obs.OnValidationFailed(r, claims, res)
		}

		if requireAll {
			return res
		}
		failures = append(failures, res.Message)
	}

	if requireAll {
		return Success()
	}
	return Result{Message: strings.Join(failures, "; "), Failures: failures}
}

// runValidator executes one validator, converting a panic into a failure
// result rather than propagating it up the dispatch chain.
func runValidator(v Validator, r *http.Request, claims jwt.MapClaims) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("validator panicked",
				zap.String("validator", v.Name()),
				zap.Any("panic", rec))
			res = Result{Message: defaultMessage(v)}
		}
	}()
	return v.Validate(r, claims)
}

func defaultMessage(v Validator) string {
	if dm, ok := v.(DefaultMessager); ok && dm.DefaultMessage() != "" {
		return dm.DefaultMessage()
	}
	return fmt.Sprintf("validation failed for %s", v.Name())
}
