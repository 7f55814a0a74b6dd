package rest

import (
	"sync"

	"github.com/SaiNageswarS/go-rest-boot/annotation"
	"github.com/SaiNageswarS/go-rest-boot/logger"
	"go.uber.org/zap"
)

type PolicyKind int

const (
	// PolicyBasicAuth requires a present, valid JWT but runs no validators.
	// It is also the fallback for malformed authorization annotations: the
	// resolver never silently opens access.
	PolicyBasicAuth PolicyKind = iota
	PolicyPublic
	PolicyValidated
)

// Policy is the resolved authorization requirement of one endpoint.
type Policy struct {
	Kind       PolicyKind
	Validators []Validator
	RequireAll bool
}

// Resolver computes endpoint policies from annotation occurrences with the
// precedence: method public > method validators > controller validators >
// basic auth. Resolutions are cached for the process lifetime.
type Resolver struct {
	registry *Registry
	byTarget map[string][]annotation.Occurrence
	cache    sync.Map // "Controller.Method" -> Policy
}

func NewResolver(occs []annotation.Occurrence, registry *Registry) *Resolver {
	byTarget := map[string][]annotation.Occurrence{}
	for _, occ := range occs {
		byTarget[occ.Target] = append(byTarget[occ.Target], occ)
	}
	return &Resolver{registry: registry, byTarget: byTarget}
}

func (res *Resolver) Resolve(controller, method string) Policy {
	key := controller + "." + method
	if cached, ok := res.cache.Load(key); ok {
		return cached.(Policy)
	}

	policy := res.resolve(controller, method)
	res.cache.Store(key, policy)
	return policy
}

func (res *Resolver) resolve(controller, method string) Policy {
	target := controller + "." + method

	// Method-level public bypasses every other annotation.
	if res.find(target, annotation.KindJWTPublic) != nil {
		return Policy{Kind: PolicyPublic}
	}

	// Method-level validators override the controller list entirely.
	if occ := res.find(target, annotation.KindJWTEndpoint); occ != nil {
		return res.validated(*occ)
	}

	if occ := res.find(controller, annotation.KindJWTController); occ != nil {
		return res.validated(*occ)
	}

	return Policy{Kind: PolicyBasicAuth}
}

func (res *Resolver) find(target string, kind annotation.Kind) *annotation.Occurrence {
	for _, occ := range res.byTarget[target] {
		if occ.Kind == kind {
			return &occ
		}
	}
	return nil
}

// validated materializes a Validated policy from an auth occurrence, falling
// back to BasicAuth when the declaration is unusable.
func (res *Resolver) validated(occ annotation.Occurrence) Policy {
	if len(occ.Validators) == 0 {
		logger.Warn("auth annotation without validators, falling back to basic auth",
			zap.String("target", occ.Target))
		return Policy{Kind: PolicyBasicAuth}
	}

	validators := make([]Validator, 0, len(occ.Validators))
	for _, name := range occ.Validators {
		v, ok := res.registry.Lookup(name)
		if !ok {
			logger.Warn("unknown validator in auth annotation",
				zap.String("target", occ.Target),
				zap.String("validator", name))
			continue
		}
		validators = append(validators, v)
	}

	if len(validators) == 0 {
		logger.Warn("no resolvable validators, falling back to basic auth",
			zap.String("target", occ.Target))
		return Policy{Kind: PolicyBasicAuth}
	}

	return Policy{Kind: PolicyValidated, Validators: validators, RequireAll: occ.RequireAll}
}
