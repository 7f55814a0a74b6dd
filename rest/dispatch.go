package rest

import (
	"net/http"

	"github.com/SaiNageswarS/go-rest-boot/annotation"
)

// wrapWithPolicy decorates a handler with its resolved authorization policy
// and parameter extraction. The state machine per request is terminal-only:
// public invokes directly, basic auth requires a decoded payload, validated
// additionally runs the validator evaluation.
func wrapWithPolicy(h HandlerFunc, policy Policy, specs []annotation.ParamSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, hasClaims := ClaimsFromContext(r.Context())

		if authDisabled(r.Context()) {
			// Administrative kill switch: no token was extracted and no
			// policy is enforced.
			params, perr := extractParams(r, specs)
			if perr != nil {
				WriteBadRequest(w, r, perr.Message)
				return
			}
			h(w, r, params)
			return
		}

		switch policy.Kind {
		case PolicyPublic:
			// No JWT requirement at all.

		case PolicyBasicAuth:
			if !hasClaims {
				WriteUnauthorized(w, r, "JWT token required")
				return
			}

		case PolicyValidated:
			if !hasClaims {
				WriteUnauthorized(w, r, "JWT token required")
				return
			}

			result := Evaluate(r, claims, policy.Validators, policy.RequireAll)
			if !result.OK {
				mode := "require_any"
				if policy.RequireAll {
					mode = "require_all"
				}
				WriteForbidden(w, r, result.Message, map[string]any{
					"validation_mode":    mode,
					"validators_count":   len(policy.Validators),
					"failed_validations": result.Failures,
				})
				return
			}
		}

		params, perr := extractParams(r, specs)
		if perr != nil {
			WriteBadRequest(w, r, perr.Message)
			return
		}

		h(w, r, params)
	}
}
